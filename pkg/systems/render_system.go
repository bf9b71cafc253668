package systems

import (
	"fmt"
	"image/color"

	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderSystem 换装画面渲染
//
// 职责范围：
//   - 选中的背景与滚动的云层
//   - 人物底图
//   - 按 RenderOrder 绘制所有可见服饰的部件
//   - 调试模式下的点击区域和吸附槽
//
// 绘制只读取组件状态，不修改任何数据，可以在任意时刻重复调用。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	wardrobe      *WardrobeSystem
	debug         bool
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, wardrobe *WardrobeSystem) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		wardrobe:      wardrobe,
	}
}

// SetDebug 开关调试绘制
func (s *RenderSystem) SetDebug(debug bool) {
	s.debug = debug
}

// DrawBackground 绘制选中的背景：天空、云层、前景三层
func (s *RenderSystem) DrawBackground(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.BackgroundComponent](s.entityManager) {
		bg, _ := ecs.GetComponent[*components.BackgroundComponent](s.entityManager, id)
		if !bg.Selected {
			continue
		}

		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok && sprite.Image != nil {
			screen.DrawImage(sprite.Image, nil)
		}

		if bg.CloudImage != nil {
			width := bg.CloudImage.Bounds().Dx()
			for _, x := range CloudPositions(bg.CloudOffset, width, screen.Bounds().Dx()) {
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(float64(x), 0)
				screen.DrawImage(bg.CloudImage, op)
			}
		}

		if bg.TreesImage != nil {
			screen.DrawImage(bg.TreesImage, nil)
		}
		return
	}
}

// CloudPositions 云层图片各份拷贝的横坐标
// 拷贝首尾相接，从不大于 0 的位置开始铺满 [0, screenWidth)
func CloudPositions(offset, width, screenWidth int) []int {
	if width <= 0 {
		return nil
	}
	start := (offset%width+width)%width - width
	var xs []int
	for x := start; x < screenWidth; x += width {
		xs = append(xs, x)
	}
	return xs
}

// DrawWardrobe 绘制人物底图和服饰
func (s *RenderSystem) DrawWardrobe(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.BaseFigureComponent](s.entityManager) {
		base, _ := ecs.GetComponent[*components.BaseFigureComponent](s.entityManager, id)
		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok && sprite.Image != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(base.Anchor.X), float64(base.Anchor.Y))
			screen.DrawImage(sprite.Image, op)
		}
		if s.debug {
			vector.StrokeRect(screen, float32(base.Anchor.X), float32(base.Anchor.Y),
				float32(base.Size.W), float32(base.Size.H), 1, color.RGBA{255, 255, 0, 255}, false)
		}
	}

	origin := s.wardrobe.Origin()
	for _, pid := range RenderOrder(s.entityManager) {
		piece, _ := ecs.GetComponent[*components.PieceComponent](s.entityManager, pid)
		if !s.wardrobe.Visible(piece.Owner) {
			continue
		}
		sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, pid)
		if !ok || sprite.Image == nil {
			continue
		}
		w, _ := ecs.GetComponent[*components.WearableComponent](s.entityManager, piece.Owner)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(origin.X+w.Position.X), float64(origin.Y+w.Position.Y))
		screen.DrawImage(sprite.Image, op)
	}

	if s.debug {
		s.drawDebug(screen)
	}
}

func (s *RenderSystem) drawDebug(screen *ebiten.Image) {
	hitColor := color.RGBA{0, 255, 0, 255}
	dragColor := color.RGBA{255, 0, 0, 255}

	for _, id := range s.wardrobe.Wearables() {
		if !s.wardrobe.Visible(id) {
			continue
		}
		r := s.wardrobe.HitRect(id)
		c := hitColor
		if id == s.wardrobe.Dragging() {
			c = dragColor
		}
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, c, false)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("dressed: %d  censored: %v",
		s.wardrobe.Completions(), s.wardrobe.Censored()), 2, 200)
}
