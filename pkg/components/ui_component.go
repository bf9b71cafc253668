package components

import "github.com/decker502/dressup/pkg/config"

// ScreenID 标识 UI 实体所属的界面
type ScreenID int

const (
	ScreenTitle ScreenID = iota
	ScreenDressUp
	ScreenSettings
)

// String 返回界面名（日志用）
func (s ScreenID) String() string {
	switch s {
	case ScreenTitle:
		return "title"
	case ScreenDressUp:
		return "dressup"
	case ScreenSettings:
		return "settings"
	}
	return "unknown"
}

// OverlayZ 不低于该值的 UI 元素绘制在服饰之上
const OverlayZ = 5

// UIComponent 标记实体为某个界面的 UI 元素
// Bounds 为游戏像素坐标下的绘制与点击区域
type UIComponent struct {
	Screen ScreenID
	Bounds config.Rect
	Hidden bool
	Z      int // 同一界面内的绘制顺序，也决定点击的优先级
}
