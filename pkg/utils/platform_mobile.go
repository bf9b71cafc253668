//go:build mobile

package utils

// IsMobile 移动端编译时总是 true（没有全屏快捷键，窗口由系统管理）
func IsMobile() bool {
	return true
}
