package game

import (
	"fmt"
	"log"

	"github.com/decker502/dressup/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// UserSettings 用户设置
// 只保存音量、静音和审查模式；穿戴状态不持久化
type UserSettings struct {
	VolumeSteps int  `yaml:"volumeSteps"` // 音量刻度 0..MaxVolumeSteps
	Muted       bool `yaml:"muted"`       // 静音
	Censored    bool `yaml:"censored"`    // 审查模式
}

// DefaultSettings 返回默认设置
func DefaultSettings() *UserSettings {
	return &UserSettings{
		VolumeSteps: config.DefaultVolumeSteps,
	}
}

// SettingsManager 设置管理器
// 负责用户设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *UserSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "user"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败不是致命错误，使用默认设置继续运行
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或尚未保存过时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded UserSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.VolumeSteps = clampSteps(loaded.VolumeSteps)

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded: %+v", loaded)
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时什么也不做
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *UserSettings {
	return sm.settings
}

// SetVolumeSteps 设置音量刻度（限制在 0..MaxVolumeSteps）
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetVolumeSteps(steps int) {
	sm.settings.VolumeSteps = clampSteps(steps)
}

// SetMuted 设置静音
func (sm *SettingsManager) SetMuted(muted bool) {
	sm.settings.Muted = muted
}

// SetCensored 设置审查模式
func (sm *SettingsManager) SetCensored(censored bool) {
	sm.settings.Censored = censored
}

func clampSteps(steps int) int {
	if steps < 0 {
		return 0
	}
	if steps > config.MaxVolumeSteps {
		return config.MaxVolumeSteps
	}
	return steps
}
