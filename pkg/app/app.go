// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"

	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/entities"
	"github.com/decker502/dressup/pkg/game"
	"github.com/decker502/dressup/pkg/scenes"
	"github.com/decker502/dressup/pkg/systems"
	"github.com/decker502/dressup/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 变体名（data/variants/<name>.yaml）
	Variant string
	// Censored 启动时开启审查模式
	Censored bool
	// Debug 绘制点击区域等调试信息
	Debug bool
	// Medals 成就上报，nil 表示不上报
	Medals systems.MedalUnlocker
	// StorageName gdata 存储目录名，为空时不持久化设置
	StorageName string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	session      *scenes.Session
	variant      *config.VariantConfig
	verbose      bool

	offscreen *ebiten.Image
	scale     float64

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 变体数据表错误是致命的，直接返回错误。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	variant, err := config.LoadVariant(cfg.Variant)
	if err != nil {
		return nil, fmt.Errorf("变体加载失败: %w", err)
	}
	log.Printf("[App] variant %s: %d layers, %d components, %d pieces",
		variant.Name, len(variant.Layers), len(variant.Components), len(variant.Pieces))

	var storage *gdata.Manager
	if cfg.StorageName != "" {
		if err := utils.EnsureStorageDir(cfg.StorageName); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
		storage, err = gdata.Open(gdata.Config{AppName: cfg.StorageName})
		if err != nil {
			log.Printf("[App] Warning: settings storage unavailable: %v", err)
			storage = nil
		}
	}
	settingsManager := game.NewSettingsManager(storage)

	audioContext := audio.NewContext(48000)
	resourceManager := game.NewResourceManager(audioContext)
	audioManager := game.NewAudioManager(nil, settingsManager)

	sceneManager := game.NewSceneManager()
	session := scenes.NewSession(variant, resourceManager, audioManager, settingsManager, sceneManager, cfg.Medals, scenes.Options{
		Debug:    cfg.Debug,
		Censored: cfg.Censored,
	})

	musicPath := ""
	if variant.Music.Path != "" {
		musicPath = "assets/" + variant.Music.Path
	}
	bundle := game.LoadAssetBundle(context.Background(), entities.AssetPaths(variant), musicPath)
	sceneManager.Register(game.SceneLoading, scenes.NewLoadingScene(session, bundle))
	sceneManager.SwitchTo(game.SceneLoading)

	return &App{
		sceneManager: sceneManager,
		session:      session,
		variant:      variant,
		verbose:      cfg.Verbose,
		offscreen:    ebiten.NewImage(variant.Screen.Width, variant.Screen.Height),
		scale:        1,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowSize(a.variant))
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端窗口由系统管理）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	utils.UpdateLastTouchPosition()

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 在逻辑屏幕上绘制当前场景，再按缩放系数放大
func (a *App) Draw(screen *ebiten.Image) {
	a.offscreen.Clear()
	a.sceneManager.Draw(a.offscreen)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(a.scale, a.scale)
	screen.DrawImage(a.offscreen, op)
}

// DrawFinalScreen 全屏时 letterbox 填充黑色，像素画使用最近邻滤波
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 按窗口尺寸计算缩放系数，返回缩放后的画面尺寸
// 指针坐标除以同一个系数即为游戏像素
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := a.variant.Screen.Width, a.variant.Screen.Height
	a.scale = utils.ComputeScale(outsideWidth, outsideHeight, w, h, a.variant.Scale.Mode, a.variant.Scale.Fixed)
	utils.SetPointerScale(a.scale)
	return int(math.Ceil(float64(w) * a.scale)), int(math.Ceil(float64(h) * a.scale))
}

// WindowSize 桌面窗口的初始尺寸（逻辑屏幕乘以固定缩放系数）
func WindowSize(variant *config.VariantConfig) (int, int) {
	scale := variant.Scale.Fixed
	if scale <= 0 {
		scale = config.DefaultFixedScale
	}
	return int(float64(variant.Screen.Width) * scale), int(float64(variant.Screen.Height) * scale)
}

// Variant 返回当前变体
func (a *App) Variant() *config.VariantConfig {
	return a.variant
}

// Session 返回游戏会话（调试检查器读取快照）
func (a *App) Session() *scenes.Session {
	return a.session
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
