package game

import (
	"log"

	"github.com/decker502/dressup/pkg/config"
)

// MusicPlayer 背景音乐播放器，*audio.Player 满足该接口
type MusicPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
}

// AudioManager 音频管理器
// 职责：
//   - 背景音乐循环播放，首次交互（按键或点击）后才开始
//   - 静音开关（M 键或顶栏图标）
//   - 15 级离散音量
//
// 音量和静音写回 SettingsManager 并立即保存。
// player 为 nil 时（没有音乐资源）所有操作只更新设置。
type AudioManager struct {
	player          MusicPlayer
	settingsManager *SettingsManager
	started         bool
}

// NewAudioManager 创建音频管理器
// sm 不能为 nil；降级模式请传 NewSettingsManager(nil)
func NewAudioManager(player MusicPlayer, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		player:          player,
		settingsManager: sm,
	}
	am.apply()
	return am
}

// SetPlayer 替换音乐播放器（资源加载完成后调用）
func (am *AudioManager) SetPlayer(player MusicPlayer) {
	if am.player != nil {
		am.player.Pause()
	}
	am.player = player
	am.apply()
	if am.started && am.player != nil {
		am.player.Play()
	}
}

// Interact 用户交互通知；第一次调用时开始播放
func (am *AudioManager) Interact() {
	if am.started {
		return
	}
	am.started = true
	if am.player != nil {
		am.player.Play()
		log.Printf("[AudioManager] music started (volume %.2f)", am.Volume())
	}
}

// Started 返回音乐是否已开始
func (am *AudioManager) Started() bool {
	return am.started
}

// ToggleMute 切换静音，返回切换后的状态
func (am *AudioManager) ToggleMute() bool {
	am.SetMuted(!am.Muted())
	return am.Muted()
}

// SetMuted 设置静音
func (am *AudioManager) SetMuted(muted bool) {
	am.settingsManager.SetMuted(muted)
	am.apply()
	am.save()
}

// Muted 返回是否静音
func (am *AudioManager) Muted() bool {
	return am.settingsManager.GetSettings().Muted
}

// SetVolumeSteps 设置音量刻度（0..MaxVolumeSteps）
func (am *AudioManager) SetVolumeSteps(steps int) {
	am.settingsManager.SetVolumeSteps(steps)
	am.apply()
	am.save()
}

// VolumeSteps 返回当前音量刻度
func (am *AudioManager) VolumeSteps() int {
	return am.settingsManager.GetSettings().VolumeSteps
}

// Volume 返回实际输出音量（静音时为 0）
func (am *AudioManager) Volume() float64 {
	if am.Muted() {
		return 0
	}
	return float64(am.VolumeSteps()) / float64(config.MaxVolumeSteps)
}

func (am *AudioManager) apply() {
	if am.player != nil {
		am.player.SetVolume(am.Volume())
	}
}

func (am *AudioManager) save() {
	if err := am.settingsManager.Save(); err != nil {
		log.Printf("[AudioManager] Warning: %v", err)
	}
}
