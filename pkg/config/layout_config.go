package config

// 布局配置常量
// 本文件定义了换装游戏中与变体无关的固定参数。
// 所有坐标使用"游戏像素"（未缩放的逻辑屏幕坐标），渲染时统一乘以缩放系数。

// Logical Screen (逻辑屏幕)
const (
	// ScreenWidth 逻辑屏幕宽度（游戏像素）
	ScreenWidth = 384

	// ScreenHeight 逻辑屏幕高度（游戏像素）
	ScreenHeight = 216

	// DefaultFixedScale 固定缩放模式下的默认缩放系数
	DefaultFixedScale = 3
)

// Snap / Z-order (吸附与层级)
const (
	// SnapTolerancePx 吸附容差（游戏像素，与设备像素比无关）
	// 释放时 |dx| < 32 且 |dy| < 32 才会吸附
	SnapTolerancePx = 32

	// ElevationOffset 未吸附（正在摆弄）的服饰整体抬升的层级偏移
	// 保证拿起的服饰永远不会被已穿上的服饰遮挡
	ElevationOffset = 100

	// MinPieceZ / MaxPieceZ 部件声明的基础层级范围
	MinPieceZ = 1
	MaxPieceZ = 10
)

// Background / Audio
const (
	// CloudTickInterval 云层滚动的时间间隔（秒）
	CloudTickInterval = 0.5

	// MaxVolumeSteps 音量刻度数量
	MaxVolumeSteps = 15

	// DefaultVolumeSteps 初始音量刻度（7/15）
	DefaultVolumeSteps = 7
)

// GameWindowWidth / GameWindowHeight 桌面窗口初始尺寸（固定缩放下的物理像素）
const (
	GameWindowWidth  = ScreenWidth * DefaultFixedScale
	GameWindowHeight = ScreenHeight * DefaultFixedScale
)
