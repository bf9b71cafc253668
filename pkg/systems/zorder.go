package systems

import (
	"sort"

	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/ecs"
)

// pieceOrderKey 部件的全局绘制顺序键
type pieceOrderKey struct {
	dragging  bool
	effective int
	wearable  int
	baseZ     int
	piece     int
}

func (a pieceOrderKey) less(b pieceOrderKey) bool {
	if a.dragging != b.dragging {
		return !a.dragging
	}
	if a.effective != b.effective {
		return a.effective < b.effective
	}
	if a.wearable != b.wearable {
		return a.wearable < b.wearable
	}
	if a.baseZ != b.baseZ {
		return a.baseZ < b.baseZ
	}
	return a.piece < b.piece
}

// RenderOrder 返回所有部件从下到上的绘制顺序
//
// 排序依据依次为：是否正在拖拽、有效层级、服饰声明顺序、声明层级、部件声明顺序。
// 吸附的部件按设计好的 1..10 层级互相穿插，未吸附的部件整体抬升到 +100 之上，
// 正在拖拽的服饰永远在最上面。
func RenderOrder(em *ecs.EntityManager) []ecs.EntityID {
	pieces := ecs.GetEntitiesWith1[*components.PieceComponent](em)
	keys := make(map[ecs.EntityID]pieceOrderKey, len(pieces))

	for _, id := range pieces {
		piece, _ := ecs.GetComponent[*components.PieceComponent](em, id)
		key := pieceOrderKey{
			effective: piece.EffectiveZ,
			baseZ:     piece.BaseZ,
			piece:     piece.Order,
		}
		if w, ok := ecs.GetComponent[*components.WearableComponent](em, piece.Owner); ok {
			key.dragging = w.Dragging
			key.wearable = w.Order
		}
		keys[id] = key
	}

	sort.SliceStable(pieces, func(i, j int) bool {
		return keys[pieces[i]].less(keys[pieces[j]])
	})
	return pieces
}
