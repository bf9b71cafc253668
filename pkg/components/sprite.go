package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 静态图片（Logo、面板、庆祝图等）
// Image 为 nil 的实体不会被绘制
type SpriteComponent struct {
	Image *ebiten.Image
}
