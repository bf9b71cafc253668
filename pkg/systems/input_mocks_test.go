package systems

import "github.com/hajimehoshi/ebiten/v2"

// mockPointerInput 可控的指针输入
type mockPointerInput struct {
	x, y         int
	justPressed  bool
	pressed      bool
	justReleased bool
}

func (m *mockPointerInput) Position() (int, int) { return m.x, m.y }
func (m *mockPointerInput) JustPressed() bool    { return m.justPressed }
func (m *mockPointerInput) Pressed() bool        { return m.pressed }
func (m *mockPointerInput) JustReleased() bool   { return m.justReleased }

// press 模拟本帧在 (x,y) 按下
func (m *mockPointerInput) press(x, y int) {
	*m = mockPointerInput{x: x, y: y, justPressed: true, pressed: true}
}

// move 模拟按住移动到 (x,y)
func (m *mockPointerInput) move(x, y int) {
	*m = mockPointerInput{x: x, y: y, pressed: true}
}

// release 模拟本帧在 (x,y) 松开
func (m *mockPointerInput) release(x, y int) {
	*m = mockPointerInput{x: x, y: y, justReleased: true}
}

// idle 模拟没有任何指针事件
func (m *mockPointerInput) idle() {
	*m = mockPointerInput{x: m.x, y: m.y}
}

// mockKeyboardInput 可控的键盘输入
type mockKeyboardInput struct {
	pressed []ebiten.Key
	chars   []rune
}

func (m *mockKeyboardInput) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return append(keys, m.pressed...)
}

func (m *mockKeyboardInput) AppendInputChars(runes []rune) []rune {
	out := append(runes, m.chars...)
	m.chars = nil
	return out
}
