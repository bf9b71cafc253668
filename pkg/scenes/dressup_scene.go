package scenes

import (
	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/ecs"
	"github.com/decker502/dressup/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// DressUpScene 换装页
//
// 每帧先处理控件（图层标签、顶栏图标），指针没有按在控件上时才交给拖拽系统，
// 避免点击标签的同时拿起下面的服饰。
type DressUpScene struct {
	session *Session
}

// NewDressUpScene 创建换装页
func NewDressUpScene(s *Session) *DressUpScene {
	return &DressUpScene{session: s}
}

// OnEnter 切换按钮系统到换装页
func (d *DressUpScene) OnEnter(from game.SceneID) {
	d.session.Buttons.SetScreen(components.ScreenDressUp)
}

// Update 更新换装页
func (d *DressUpScene) Update(deltaTime float64) {
	s := d.session
	s.update(deltaTime)

	s.Buttons.Update(deltaTime)
	if !s.Buttons.Pressing() || s.Wardrobe.Dragging() != ecs.NoEntity {
		s.Drag.Update(deltaTime)
	}

	s.publish()
}

// Draw 背景、面板和标签、人物与服饰、完成图
func (d *DressUpScene) Draw(screen *ebiten.Image) {
	s := d.session
	s.Render.DrawBackground(screen)
	s.UIRender.Draw(screen, components.ScreenDressUp)
	s.Render.DrawWardrobe(screen)
	s.UIRender.DrawOverlay(screen, components.ScreenDressUp)
}
