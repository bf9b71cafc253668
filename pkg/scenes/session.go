package scenes

import (
	"log"
	"sync/atomic"

	"github.com/decker502/dressup/pkg/components"
	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/ecs"
	"github.com/decker502/dressup/pkg/entities"
	"github.com/decker502/dressup/pkg/game"
	"github.com/decker502/dressup/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// CelebrationSeconds 全部穿上后完成图显示的时长
const CelebrationSeconds = 3.0

// Options 会话选项
type Options struct {
	Debug    bool // 调试绘制
	Censored bool // 命令行强制开启审查模式（与用户设置取或）

	// 测试时注入输入；nil 使用 Ebitengine
	Pointer  systems.PointerInput
	Keyboard systems.KeyboardInput
}

// Session 一次游戏会话共享的状态
//
// 所有界面共用一个实体管理器和一组系统；场景只决定调用哪些系统。
// Build 必须在资源加载完成后调用（贴图在创建实体时取用）。
type Session struct {
	Config    *config.VariantConfig
	Resources *game.ResourceManager
	Audio     *game.AudioManager
	Settings  *game.SettingsManager
	Scenes    *game.SceneManager

	EntityManager *ecs.EntityManager
	Wardrobe      *systems.WardrobeSystem
	Backgrounds   *systems.BackgroundSystem
	Buttons       *systems.ButtonSystem
	Drag          *systems.DragInputSystem
	Keyboard      *systems.KeyboardSystem
	Render        *systems.RenderSystem
	UIRender      *systems.ButtonRenderSystem

	Entities *entities.WardrobeEntities
	UI       *entities.UIEntities

	medals      systems.MedalUnlocker
	opts        Options
	built       bool
	celebration float64
	snapshot    atomic.Pointer[systems.OutfitSnapshot]
}

// NewSession 创建会话；实体和系统在 Build 中创建
func NewSession(cfg *config.VariantConfig, rm *game.ResourceManager, audio *game.AudioManager,
	settings *game.SettingsManager, sm *game.SceneManager, medals systems.MedalUnlocker, opts Options) *Session {
	return &Session{
		Config:    cfg,
		Resources: rm,
		Audio:     audio,
		Settings:  settings,
		Scenes:    sm,
		medals:    medals,
		opts:      opts,
	}
}

// Build 创建实体、系统和界面场景
// 重复调用无效
func (s *Session) Build() {
	if s.built {
		return
	}
	s.built = true

	cfg := s.Config
	em := ecs.NewEntityManager()
	s.EntityManager = em

	var images entities.ImageProvider
	if s.Resources != nil {
		images = s.Resources
	}
	s.Entities = entities.NewWardrobeEntities(em, cfg, images)

	s.Wardrobe = systems.NewWardrobeSystem(em, cfg, s.medals)
	s.Wardrobe.OnDressed = s.celebrate
	s.Wardrobe.OnSecret = func() { log.Printf("[Session] secret outfit unlocked") }

	s.Backgrounds = systems.NewBackgroundSystem(em, cfg.Screen.Width)

	if s.opts.Pointer != nil {
		s.Buttons = systems.NewButtonSystemWithInput(em, s.medals, s.opts.Pointer)
		s.Drag = systems.NewDragInputSystemWithInput(s.Wardrobe, s.opts.Pointer)
	} else {
		s.Buttons = systems.NewButtonSystem(em, s.medals)
		s.Drag = systems.NewDragInputSystem(s.Wardrobe)
	}
	if s.opts.Keyboard != nil {
		s.Keyboard = systems.NewKeyboardSystemWithInput(s.Backgrounds, s.Wardrobe, cfg.SecretCode(), s.opts.Keyboard)
	} else {
		s.Keyboard = systems.NewKeyboardSystem(s.Backgrounds, s.Wardrobe, cfg.SecretCode())
	}
	s.Buttons.OnInteract = s.Audio.Interact
	s.Keyboard.OnInteract = s.Audio.Interact
	s.Keyboard.OnToggleMute = func() { s.Audio.ToggleMute() }

	s.Render = systems.NewRenderSystem(em, s.Wardrobe)
	s.Render.SetDebug(s.opts.Debug)
	s.UIRender = systems.NewButtonRenderSystem(em)
	s.UIRender.SetDebug(s.opts.Debug)

	censored := s.opts.Censored || s.Settings.GetSettings().Censored
	s.UI = entities.NewUIEntities(em, cfg, s.Entities, images, s.actions(), entities.UIState{
		VolumeSteps: s.Audio.VolumeSteps(),
		Censored:    censored,
	})

	s.Wardrobe.SetCensored(censored)
	s.Wardrobe.Reset()

	s.Scenes.Register(game.SceneTitle, NewTitleScene(s))
	s.Scenes.Register(game.SceneDressUp, NewDressUpScene(s))
	s.Scenes.Register(game.SceneSettings, NewSettingsScene(s))

	s.publish()
	log.Printf("[Session] built variant %s (censored=%v, debug=%v)", cfg.Name, censored, s.opts.Debug)
}

func (s *Session) actions() entities.UIActions {
	return entities.UIActions{
		Play:          func() { s.Scenes.SwitchTo(game.SceneDressUp) },
		OpenSettings:  func() { s.Scenes.SwitchTo(game.SceneSettings) },
		CloseSettings: s.closeSettings,
		Home:          func() { s.Scenes.SwitchTo(game.SceneTitle) },
		Reset:         s.Reset,
		SetMuted:      s.Audio.SetMuted,
		Muted:         s.Audio.Muted,

		SelectLayer:   s.Wardrobe.SelectLayer,
		LayerSelected: func(layer ecs.EntityID) bool { return s.Wardrobe.SelectedLayer() == layer },

		SelectBackground:   s.Backgrounds.Select,
		BackgroundSelected: func(index int) bool { return s.Backgrounds.SelectedIndex() == index },

		SetVolume:   s.Audio.SetVolumeSteps,
		SetCensored: s.SetCensored,
	}
}

// closeSettings 返回打开设置页之前的界面
func (s *Session) closeSettings() {
	back := s.Scenes.Previous()
	if back != game.SceneTitle && back != game.SceneDressUp {
		back = game.SceneTitle
	}
	s.Scenes.SwitchTo(back)
}

// Reset 恢复初始穿戴并结束庆祝
func (s *Session) Reset() {
	s.Wardrobe.Reset()
	s.setCelebration(0)
}

// SetCensored 切换审查模式并保存到用户设置
func (s *Session) SetCensored(on bool) {
	s.Wardrobe.SetCensored(on)
	s.Settings.SetCensored(on)
	if err := s.Settings.Save(); err != nil {
		log.Printf("[Session] Warning: %v", err)
	}
}

func (s *Session) celebrate() {
	s.setCelebration(CelebrationSeconds)
}

func (s *Session) setCelebration(seconds float64) {
	s.celebration = seconds
	if s.UI == nil {
		return
	}
	if ui, ok := ecs.GetComponent[*components.UIComponent](s.EntityManager, s.UI.Dord); ok {
		ui.Hidden = seconds <= 0
	}
}

// Celebrating 返回完成图是否正在显示
func (s *Session) Celebrating() bool {
	return s.celebration > 0
}

// update 所有界面共用的每帧逻辑
func (s *Session) update(deltaTime float64) {
	s.Backgrounds.Update(deltaTime)
	s.Keyboard.Update(deltaTime)

	if s.celebration > 0 {
		s.celebration -= deltaTime
		if s.celebration <= 0 {
			s.setCelebration(0)
		}
	}
}

// publish 生成并发布快照，供其他 goroutine 读取
func (s *Session) publish() {
	snap := s.Wardrobe.Snapshot(s.Config.Name, s.Backgrounds)
	snap.Screen = s.Scenes.Current().String()
	s.snapshot.Store(snap)
}

// Snapshot 返回最近发布的快照；Build 之前为 nil
// 可以在任意 goroutine 调用
func (s *Session) Snapshot() *systems.OutfitSnapshot {
	return s.snapshot.Load()
}

// draw 背景 + 当前界面控件
func (s *Session) draw(screen *ebiten.Image, id components.ScreenID) {
	s.Render.DrawBackground(screen)
	s.UIRender.Draw(screen, id)
}
