package components

import "github.com/decker502/dressup/pkg/config"

// BaseFigureComponent 人物底图
// 存在此组件即表示吸附锚点已布局完成
type BaseFigureComponent struct {
	Anchor config.Point
	Size   config.Size
}
