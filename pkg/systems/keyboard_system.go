package systems

import (
	"log"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyboardInput 键盘输入接口
// 用于依赖注入，支持测试时 mock
type KeyboardInput interface {
	AppendPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendInputChars(runes []rune) []rune
}

// ebitenKeyboardInput Ebitengine 默认实现
type ebitenKeyboardInput struct{}

func (e *ebitenKeyboardInput) AppendPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return ebiten.AppendPressedKeys(keys)
}

func (e *ebitenKeyboardInput) AppendInputChars(runes []rune) []rune {
	return ebiten.AppendInputChars(runes)
}

// KeyboardSystem 键盘快捷键与彩蛋输入
//
//   - ←/→ 循环切换背景
//   - M 切换静音
//   - 最近输入的字符（小写）与彩蛋输入码一致时触发彩蛋
//
// 按住不放的键只在第一次按下时生效：系统记录本帧按下的键，下一帧与之比较，
// 松开之前的按键重复不会再次触发。
type KeyboardSystem struct {
	input       KeyboardInput
	backgrounds *BackgroundSystem
	wardrobe    *WardrobeSystem

	held    map[ebiten.Key]bool
	next    map[ebiten.Key]bool
	keyBuf  []ebiten.Key
	charBuf []rune

	code  []rune
	typed []rune

	// OnToggleMute 按下 M 时调用
	OnToggleMute func()
	// OnInteract 任意按键时调用（首次交互时开始播放音乐）
	OnInteract func()
}

// NewKeyboardSystem 创建键盘系统
// secretCode 为空表示变体没有彩蛋
func NewKeyboardSystem(backgrounds *BackgroundSystem, wardrobe *WardrobeSystem, secretCode string) *KeyboardSystem {
	return NewKeyboardSystemWithInput(backgrounds, wardrobe, secretCode, &ebitenKeyboardInput{})
}

// NewKeyboardSystemWithInput 创建带自定义键盘输入的键盘系统（用于测试）
func NewKeyboardSystemWithInput(backgrounds *BackgroundSystem, wardrobe *WardrobeSystem, secretCode string, input KeyboardInput) *KeyboardSystem {
	return &KeyboardSystem{
		input:       input,
		backgrounds: backgrounds,
		wardrobe:    wardrobe,
		held:        make(map[ebiten.Key]bool),
		next:        make(map[ebiten.Key]bool),
		code:        []rune(secretCode),
	}
}

// Update 处理本帧的键盘输入
func (s *KeyboardSystem) Update(deltaTime float64) {
	interacted := false

	s.keyBuf = s.input.AppendPressedKeys(s.keyBuf[:0])
	clear(s.next)
	for _, key := range s.keyBuf {
		s.next[key] = true
		if s.held[key] {
			continue
		}
		interacted = true
		s.handleKey(key)
	}
	s.held, s.next = s.next, s.held

	s.charBuf = s.input.AppendInputChars(s.charBuf[:0])
	for _, r := range s.charBuf {
		interacted = true
		s.feed(unicode.ToLower(r))
	}

	if interacted && s.OnInteract != nil {
		s.OnInteract()
	}
}

func (s *KeyboardSystem) handleKey(key ebiten.Key) {
	switch key {
	case ebiten.KeyArrowLeft:
		if s.backgrounds != nil {
			s.backgrounds.SelectRelative(-1)
		}
	case ebiten.KeyArrowRight:
		if s.backgrounds != nil {
			s.backgrounds.SelectRelative(1)
		}
	case ebiten.KeyM:
		if s.OnToggleMute != nil {
			s.OnToggleMute()
		}
	}
}

// feed 把字符追加到最近输入的环形窗口，窗口与输入码一致时触发彩蛋
func (s *KeyboardSystem) feed(r rune) {
	if len(s.code) == 0 {
		return
	}
	s.typed = append(s.typed, r)
	if over := len(s.typed) - len(s.code); over > 0 {
		s.typed = s.typed[over:]
	}
	if string(s.typed) != string(s.code) {
		return
	}

	s.typed = s.typed[:0]
	log.Printf("[KeyboardSystem] secret code entered")
	if s.wardrobe != nil {
		s.wardrobe.TriggerSecret()
	}
}
