package systems

import "github.com/decker502/dressup/pkg/utils"

// PointerInput 指针输入接口（鼠标或触摸），坐标为游戏像素
// 用于依赖注入，支持测试时 mock
type PointerInput interface {
	Position() (int, int)
	JustPressed() bool
	Pressed() bool
	JustReleased() bool
}

// ebitenPointerInput Ebitengine 默认实现
type ebitenPointerInput struct{}

func (e *ebitenPointerInput) Position() (int, int) {
	return utils.GetPointerPosition()
}

func (e *ebitenPointerInput) JustPressed() bool {
	pressed, _, _ := utils.IsPointerJustPressed()
	return pressed
}

func (e *ebitenPointerInput) Pressed() bool {
	return utils.IsPointerPressed()
}

func (e *ebitenPointerInput) JustReleased() bool {
	released, _, _ := utils.IsPointerJustReleased()
	return released
}

// defaultPointerInput 默认指针输入实例
var defaultPointerInput PointerInput = &ebitenPointerInput{}
