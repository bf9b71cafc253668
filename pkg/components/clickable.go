package components

// ClickableComponent 标记 UI 实体可以被点击
// 点击区域取 UIComponent.Bounds
type ClickableComponent struct {
	IsEnabled bool // 是否可以被点击
	IsHovered bool
}
