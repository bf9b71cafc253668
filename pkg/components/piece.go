package components

import "github.com/decker502/dressup/pkg/ecs"

// PieceComponent 服饰的渲染部件（前/后分层）
// BaseZ 只在同一件服饰内有意义，EffectiveZ 由吸附状态推导
type PieceComponent struct {
	ID         string
	Owner      ecs.EntityID
	BaseZ      int
	EffectiveZ int
	Order      int // 在数据表中的声明顺序
}
