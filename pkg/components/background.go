package components

import "github.com/hajimehoshi/ebiten/v2"

// BackgroundComponent 场景背景
// CloudOffset 是云层的横向滚动偏移（游戏像素），每个滚动周期减一，到 0 后回绕
type BackgroundComponent struct {
	ID          string
	Index       int
	Selected    bool
	CloudOffset int

	CloudImage *ebiten.Image // 可选，nil 表示没有云层
	CloudWidth int           // 云层图宽度，即滚动周期；0 时使用屏幕宽度
	TreesImage *ebiten.Image // 可选，绘制在云层之上的前景
}
