package scenes

import (
	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// SettingsScene 设置页：音量、审查模式、背景、重置
// 关闭（X）时返回打开设置页之前的界面
type SettingsScene struct {
	session *Session
}

// NewSettingsScene 创建设置页
func NewSettingsScene(s *Session) *SettingsScene {
	return &SettingsScene{session: s}
}

// OnEnter 切换按钮系统到设置页
func (st *SettingsScene) OnEnter(from game.SceneID) {
	st.session.Buttons.SetScreen(components.ScreenSettings)
}

// Update 更新设置页
func (st *SettingsScene) Update(deltaTime float64) {
	s := st.session
	s.update(deltaTime)
	s.Buttons.Update(deltaTime)
	s.publish()
}

// Draw 绘制设置页
func (st *SettingsScene) Draw(screen *ebiten.Image) {
	st.session.draw(screen, components.ScreenSettings)
}
