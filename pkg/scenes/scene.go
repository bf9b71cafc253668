// Package scenes 实现标题、换装、设置和加载界面
//
// 所有界面共享一个 Session；场景只负责决定每帧调用哪些系统、按什么顺序绘制。
package scenes

import (
	"github.com/decker502/dressup/pkg/game"
)

// Scene 是 game.Scene 的别名
type Scene = game.Scene
