package scenes

import (
	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// TitleScene 标题页：logo、开始、设置和隐藏的房间号
type TitleScene struct {
	session *Session
}

// NewTitleScene 创建标题页
func NewTitleScene(s *Session) *TitleScene {
	return &TitleScene{session: s}
}

// OnEnter 切换按钮系统到标题页
func (t *TitleScene) OnEnter(from game.SceneID) {
	t.session.Buttons.SetScreen(components.ScreenTitle)
}

// Update 更新标题页
func (t *TitleScene) Update(deltaTime float64) {
	s := t.session
	s.update(deltaTime)
	s.Buttons.Update(deltaTime)
	s.publish()
}

// Draw 绘制标题页
func (t *TitleScene) Draw(screen *ebiten.Image) {
	t.session.draw(screen, components.ScreenTitle)
}
