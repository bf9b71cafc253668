package components

import "github.com/hajimehoshi/ebiten/v2"

// ButtonComponent 按钮组件
// 外观可以是图片，也可以只是一个文字标签（没有美术资源时）
type ButtonComponent struct {
	Label string

	NormalImage *ebiten.Image
	HoverImage  *ebiten.Image // 可选

	// OnClick 在点击区域内松开指针时调用
	OnClick func()
	// Selected 可选，返回 true 时按钮绘制为选中状态（图层标签、背景图标）
	Selected func() bool
}
