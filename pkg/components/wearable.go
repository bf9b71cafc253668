package components

import (
	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/ecs"
)

// WearableComponent 一件可拖拽的服饰
//
// 坐标约定：
//   - Start / Position 相对服饰坐标原点（布局中的 componentsOrigin）
//   - SnapOffset 相对人物底图锚点
//
// 状态字段是唯一的事实来源，渲染只读取它们。
type WearableComponent struct {
	ID      string
	LayerID string
	Layer   ecs.EntityID // 所属图层实体
	Order   int          // 在数据表中的声明顺序

	Start      config.Point
	SnapOffset config.Point
	Size       config.Size
	ClickInset config.Insets

	Required            bool // 计入"全部穿上"的判定
	RequiredForCensored bool // 审查模式下强制穿上且不可拖动
	HiddenFromList      bool // 未穿上时不在服饰面板显示

	Position config.Point
	Snapped  bool
	Dragging bool

	// 抓取点占外框尺寸的比例（0..1）
	GrabPctX float64
	GrabPctY float64

	Pieces []ecs.EntityID
}
