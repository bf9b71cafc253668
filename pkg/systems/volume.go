package systems

import "github.com/decker502/dressup/pkg/config"

// NotchIndexAt 返回指针落在音量条的第几个刻度（0 起），不在音量条内时返回 -1
func NotchIndexAt(bounds config.Rect, steps, x, y int) int {
	if steps <= 0 || !bounds.Contains(x, y) {
		return -1
	}
	index := (x - bounds.X) * steps / bounds.W
	if index >= steps {
		index = steps - 1
	}
	return index
}

// NextVolumeStep 点击第 index 个刻度后的音量刻度
// 点击当前刻度表示静音（0），否则为 index+1
func NextVolumeStep(current, index int) int {
	if index+1 == current {
		return 0
	}
	return index + 1
}

// VolumeForStep 把刻度换算成 0..1 的音量
func VolumeForStep(step, steps int) float64 {
	if steps <= 0 || step <= 0 {
		return 0
	}
	if step >= steps {
		return 1
	}
	return float64(step) / float64(steps)
}
