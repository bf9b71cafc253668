package components

import "github.com/hajimehoshi/ebiten/v2"

// CheckboxComponent 复选框组件（审查模式开关）
type CheckboxComponent struct {
	UncheckedImage *ebiten.Image
	CheckedImage   *ebiten.Image

	IsChecked bool
	Label     string

	// 回调函数
	OnToggle func(isChecked bool)
}
