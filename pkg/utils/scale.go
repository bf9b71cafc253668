package utils

import (
	"math"

	"github.com/decker502/dressup/pkg/config"
)

// ComputeScale 根据窗口尺寸计算逻辑画面的缩放系数
//
// 模式：
//   - fixed: 始终使用 fixed（<=0 时为 1）
//   - integer: 能完整放下逻辑画面的最大整数倍，至少为 1（像素画不失真）
//   - fractional: 能完整放下逻辑画面的最大连续倍数
//
// 窗口尺寸无效（最小化时为 0）时返回 1。
func ComputeScale(viewW, viewH, logicalW, logicalH int, mode string, fixed float64) float64 {
	if mode == config.ScaleModeFixed {
		if fixed <= 0 {
			return 1
		}
		return fixed
	}

	if viewW <= 0 || viewH <= 0 || logicalW <= 0 || logicalH <= 0 {
		return 1
	}

	fit := math.Min(float64(viewW)/float64(logicalW), float64(viewH)/float64(logicalH))
	if mode == config.ScaleModeInteger {
		fit = math.Floor(fit)
		if fit < 1 {
			return 1
		}
		return fit
	}

	if fit <= 0 {
		return 1
	}
	return fit
}

// ToGamePixels 把缩放后的屏幕坐标转换回游戏像素
func ToGamePixels(x, y int, scale float64) (int, int) {
	if scale <= 0 {
		return x, y
	}
	return int(math.Floor(float64(x) / scale)), int(math.Floor(float64(y) / scale))
}
