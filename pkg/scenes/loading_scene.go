package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/dressup/pkg/game"
	"github.com/decker502/dressup/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// LoadingScene 等待资源包加载完成
//
// 资源在后台 goroutine 中解码；完成后在主线程转换为贴图、创建音乐播放器、
// 构建会话，然后切换到标题页。加载失败不会中止游戏，缺失的贴图使用占位图。
type LoadingScene struct {
	session *Session
	bundle  *game.AssetBundle
	elapsed float64
	done    bool
}

// NewLoadingScene 创建加载界面
func NewLoadingScene(s *Session, bundle *game.AssetBundle) *LoadingScene {
	return &LoadingScene{session: s, bundle: bundle}
}

// Update 资源就绪后完成加载并切换到标题页
func (l *LoadingScene) Update(deltaTime float64) {
	l.elapsed += deltaTime
	if l.done || !l.bundle.Ready() {
		return
	}
	l.done = true

	if err := l.bundle.Err(); err != nil {
		log.Printf("[LoadingScene] Warning: asset loading failed: %v (using placeholders)", err)
	}
	for _, path := range l.bundle.Missing() {
		log.Printf("[LoadingScene] missing asset: %s", path)
	}

	s := l.session
	if s.Resources != nil {
		s.Resources.AddDecoded(l.bundle.Images())
		if music := l.bundle.Music(); music != nil {
			player, err := s.Resources.NewMusicPlayer(s.Config.Music.Path, music)
			if err != nil {
				log.Printf("[LoadingScene] Warning: %v", err)
			} else {
				s.Audio.SetPlayer(player)
			}
		}
	}

	s.Build()
	s.Scenes.SwitchTo(game.SceneTitle)
	log.Printf("[LoadingScene] loaded in %.2fs", l.elapsed)
}

// Draw 绘制加载动画（三个跳动的方块）
func (l *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1e, 0x16, 0x2a, 0xff})

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	active := int(l.elapsed*4) % 3
	for i := 0; i < 3; i++ {
		c := color.RGBA{0x55, 0x4a, 0x6a, 0xff}
		y := float64(h / 2)
		if i == active {
			c = color.RGBA{0xf4, 0xe9, 0xd8, 0xff}
			y -= utils.Lerp(0, 4, utils.EaseOutQuad(utils.PingPong(l.elapsed, 0.25)))
		}
		x := float32(w/2 - 16 + i*12)
		vector.DrawFilledRect(screen, x, float32(y), 8, 8, c, false)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("loading %s", l.session.Config.Name), w/2-40, h/2+14)
}
