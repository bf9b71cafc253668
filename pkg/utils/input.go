// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerScale 当前画面缩放系数，由 App.Layout 更新
// Ebitengine 返回的指针坐标是缩放后的屏幕坐标，这里统一转换回游戏像素
var pointerScale = 1.0

// SetPointerScale 设置指针坐标的缩放系数
func SetPointerScale(scale float64) {
	if scale > 0 {
		pointerScale = scale
	}
}

// PointerScale 返回当前缩放系数
func PointerScale() float64 {
	return pointerScale
}

// 保存最后一次触摸位置（用于触摸释放时获取位置）
var lastTouchX, lastTouchY int

// rawPointerPosition 获取当前指针位置（触摸或鼠标），屏幕坐标
func rawPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// GetPointerPosition 获取当前指针位置（游戏像素）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	x, y := rawPointerPosition()
	return ToGamePixels(x, y, pointerScale)
}

// UpdateLastTouchPosition 更新最后一次触摸位置
// 应该在每帧更新时调用
func UpdateLastTouchPosition() {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		lastTouchX, lastTouchY = ebiten.TouchPosition(touchIDs[0])
	}
}

// IsPointerPressed 检查是否有指针按下（鼠标左键或触摸）
func IsPointerPressed() bool {
	if len(ebiten.AppendTouchIDs(nil)) > 0 {
		return true
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置（游戏像素）
func IsPointerJustPressed() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		lastTouchX, lastTouchY = x, y
		gx, gy := ToGamePixels(x, y, pointerScale)
		return true, gx, gy
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		gx, gy := GetPointerPosition()
		return true, gx, gy
	}

	return false, 0, 0
}

// IsPointerJustReleased 检查是否刚刚释放指针（触摸或鼠标）
// 返回是否释放以及释放位置（游戏像素）
func IsPointerJustReleased() (bool, int, int) {
	if len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		// 触摸释放时使用保存的最后触摸位置
		gx, gy := ToGamePixels(lastTouchX, lastTouchY, pointerScale)
		return true, gx, gy
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		gx, gy := GetPointerPosition()
		return true, gx, gy
	}

	return false, 0, 0
}
