package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 管理当前场景
// 同一时刻只有一个场景的 Update 和 Draw 会被调用
type SceneManager struct {
	scenes   map[SceneID]Scene
	current  SceneID
	previous SceneID
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{
		scenes: make(map[SceneID]Scene),
	}
}

// Register 注册场景；重复注册会覆盖
func (sm *SceneManager) Register(id SceneID, scene Scene) {
	sm.scenes[id] = scene
}

// SwitchTo 切换到指定场景
// 场景未注册时记录错误并保持当前场景
func (sm *SceneManager) SwitchTo(id SceneID) bool {
	scene, ok := sm.scenes[id]
	if !ok {
		log.Printf("[SceneManager] 错误: 场景未注册: %s", id)
		return false
	}

	from := sm.current
	if from != id {
		sm.previous = from
	}
	sm.current = id
	log.Printf("[SceneManager] %s -> %s", from, id)

	if e, ok := scene.(Enterable); ok {
		e.OnEnter(from)
	}
	return true
}

// Current 返回当前场景 ID
func (sm *SceneManager) Current() SceneID {
	return sm.current
}

// Previous 返回上一个场景 ID（设置页关闭时据此返回）
func (sm *SceneManager) Previous() SceneID {
	return sm.previous
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.scenes[sm.current]
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if scene := sm.GetCurrentScene(); scene != nil {
		scene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if scene := sm.GetCurrentScene(); scene != nil {
		scene.Draw(screen)
	}
}
