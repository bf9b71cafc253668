package utils

// 缓动函数：输入进度 t ∈ [0, 1]，输出缓动后的进度
// 超出范围的输入先被截断

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// EaseOutQuad 二次缓出，开始快结束慢
func EaseOutQuad(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// EaseInOutCubic 三次缓入缓出
func EaseInOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// PingPong 把单调递增的时间折返成 0→1→0 的三角波，period 为一个来回的时长
func PingPong(elapsed, period float64) float64 {
	if period <= 0 {
		return 0
	}
	phase := elapsed/period - float64(int(elapsed/period))
	if phase < 0.5 {
		return phase * 2
	}
	return 2 - phase*2
}

// Lerp 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
