package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个界面（加载、标题、换装、设置）
// 每个场景有自己的更新和绘制逻辑
type Scene interface {
	// Update 更新场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 绘制到逻辑屏幕（未缩放的游戏像素）
	Draw(screen *ebiten.Image)
}

// Enterable 可选接口：场景被切换为当前场景时收到通知
type Enterable interface {
	// OnEnter from 为之前的场景，首次切换时为 SceneNone
	OnEnter(from SceneID)
}

// SceneID 场景标识
type SceneID int

const (
	SceneNone SceneID = iota
	SceneLoading
	SceneTitle
	SceneDressUp
	SceneSettings
)

func (id SceneID) String() string {
	switch id {
	case SceneLoading:
		return "loading"
	case SceneTitle:
		return "title"
	case SceneDressUp:
		return "dressup"
	case SceneSettings:
		return "settings"
	}
	return "none"
}
