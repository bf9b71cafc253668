package systems

import (
	"image/color"
	"sort"

	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	buttonFill     = color.RGBA{0x3a, 0x2f, 0x4f, 0xff}
	buttonHover    = color.RGBA{0x5a, 0x4a, 0x7a, 0xff}
	buttonSelected = color.RGBA{0xd0, 0x8a, 0x3c, 0xff}
	outline        = color.RGBA{0xf4, 0xe9, 0xd8, 0xff}
	notchEmpty     = color.RGBA{0x55, 0x55, 0x55, 0xff}
	notchFilled    = color.RGBA{0xf4, 0xe9, 0xd8, 0xff}
)

// ButtonRenderSystem 界面控件渲染系统
// 负责渲染当前界面的所有 UI 实体（贴图、按钮、标签、复选框、音量条）
//
// 没有美术资源时按钮绘制为纯色矩形加文字，保证界面始终可用。
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
	debug         bool
}

// NewButtonRenderSystem 创建界面控件渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager: em,
	}
}

// SetDebug 开关调试绘制（显示隐藏的点击区域）
func (s *ButtonRenderSystem) SetDebug(debug bool) {
	s.debug = debug
}

// Draw 渲染指定界面 Z 低于 OverlayZ 的控件，按 Z 从低到高
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image, screenID components.ScreenID) {
	s.draw(screen, screenID, func(z int) bool { return z < components.OverlayZ })
}

// DrawOverlay 渲染指定界面的浮层（Z 不低于 OverlayZ），在服饰之后调用
func (s *ButtonRenderSystem) DrawOverlay(screen *ebiten.Image, screenID components.ScreenID) {
	s.draw(screen, screenID, func(z int) bool { return z >= components.OverlayZ })
}

func (s *ButtonRenderSystem) draw(screen *ebiten.Image, screenID components.ScreenID, include func(z int) bool) {
	var ids []ecs.EntityID
	zs := make(map[ecs.EntityID]int)
	for _, id := range ecs.GetEntitiesWith1[*components.UIComponent](s.entityManager) {
		ui, _ := ecs.GetComponent[*components.UIComponent](s.entityManager, id)
		if ui.Screen != screenID || ui.Hidden || !include(ui.Z) {
			continue
		}
		zs[id] = ui.Z
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool { return zs[ids[i]] < zs[ids[j]] })

	for _, id := range ids {
		s.drawEntity(screen, id)
	}
}

func (s *ButtonRenderSystem) drawEntity(screen *ebiten.Image, id ecs.EntityID) {
	em := s.entityManager
	ui, _ := ecs.GetComponent[*components.UIComponent](em, id)
	r := ui.Bounds

	hovered := false
	if clickable, ok := ecs.GetComponent[*components.ClickableComponent](em, id); ok {
		hovered = clickable.IsHovered
	}

	switch {
	case ecs.HasComponent[*components.ButtonComponent](em, id):
		button, _ := ecs.GetComponent[*components.ButtonComponent](em, id)
		selected := button.Selected != nil && button.Selected()
		img := button.NormalImage
		if hovered && button.HoverImage != nil {
			img = button.HoverImage
		}
		if img == nil {
			fill := buttonFill
			if selected {
				fill = buttonSelected
			} else if hovered {
				fill = buttonHover
			}
			vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, false)
			vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, outline, false)
			if button.Label != "" {
				ebitenutil.DebugPrintAt(screen, button.Label, r.X+2, r.Y-2)
			}
			return
		}
		drawAt(screen, img, r.X, r.Y)
		if selected {
			vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, buttonSelected, false)
		}

	case ecs.HasComponent[*components.CheckboxComponent](em, id):
		checkbox, _ := ecs.GetComponent[*components.CheckboxComponent](em, id)
		img := checkbox.UncheckedImage
		if checkbox.IsChecked {
			img = checkbox.CheckedImage
		}
		if img != nil {
			drawAt(screen, img, r.X, r.Y)
			return
		}
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, outline, false)
		if checkbox.IsChecked {
			vector.DrawFilledRect(screen, float32(r.X+3), float32(r.Y+3), float32(r.W-6), float32(r.H-6), outline, false)
		}

	case ecs.HasComponent[*components.VolumeNotchesComponent](em, id):
		notches, _ := ecs.GetComponent[*components.VolumeNotchesComponent](em, id)
		if notches.Steps <= 0 {
			return
		}
		slot := float32(r.W) / float32(notches.Steps)
		for i := 0; i < notches.Steps; i++ {
			c := notchEmpty
			if i < notches.Current {
				c = notchFilled
			}
			// 刻度逐渐升高
			h := float32(r.H) * float32(i+1) / float32(notches.Steps)
			x := float32(r.X) + slot*float32(i)
			vector.DrawFilledRect(screen, x, float32(r.Y+r.H)-h, slot-1, h, c, false)
		}

	case ecs.HasComponent[*components.LabelComponent](em, id):
		label, _ := ecs.GetComponent[*components.LabelComponent](em, id)
		ebitenutil.DebugPrintAt(screen, label.Text, r.X, r.Y-3)

	case ecs.HasComponent[*components.RoomCodeComponent](em, id):
		if s.debug {
			vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, buttonSelected, false)
		}

	default:
		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id); ok && sprite.Image != nil {
			drawAt(screen, sprite.Image, r.X, r.Y)
		}
	}
}

func drawAt(screen, img *ebiten.Image, x, y int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}
