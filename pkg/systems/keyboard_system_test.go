package systems

import (
	"testing"

	"github.com/decker502/dressup/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func newKeyboardFixture(t *testing.T) (*wardrobeFixture, *BackgroundSystem, *KeyboardSystem, *mockKeyboardInput) {
	t.Helper()
	f := newWardrobeFixture(t)
	bs := NewBackgroundSystem(f.em, config.ScreenWidth)
	input := &mockKeyboardInput{}
	ks := NewKeyboardSystemWithInput(bs, f.ws, f.cfg.SecretCode(), input)
	return f, bs, ks, input
}

func TestKeyboardArrowsCycleBackgrounds(t *testing.T) {
	_, bs, ks, input := newKeyboardFixture(t)

	input.pressed = []ebiten.Key{ebiten.KeyArrowLeft}
	ks.Update(1.0 / 60)
	if bs.SelectedIndex() != 2 {
		t.Fatalf("left from first should select last, got %d", bs.SelectedIndex())
	}

	// 按住不放不会重复触发
	for i := 0; i < 10; i++ {
		ks.Update(1.0 / 60)
	}
	if bs.SelectedIndex() != 2 {
		t.Errorf("held key re-triggered, selected %d", bs.SelectedIndex())
	}

	input.pressed = nil
	ks.Update(1.0 / 60)
	input.pressed = []ebiten.Key{ebiten.KeyArrowRight}
	ks.Update(1.0 / 60)
	if bs.SelectedIndex() != 0 {
		t.Errorf("right from last should select first, got %d", bs.SelectedIndex())
	}
}

func TestKeyboardMuteToggleIgnoresRepeat(t *testing.T) {
	_, _, ks, input := newKeyboardFixture(t)
	toggles, interactions := 0, 0
	ks.OnToggleMute = func() { toggles++ }
	ks.OnInteract = func() { interactions++ }

	input.pressed = []ebiten.Key{ebiten.KeyM}
	ks.Update(1.0 / 60)
	ks.Update(1.0 / 60)
	ks.Update(1.0 / 60)
	if toggles != 1 {
		t.Errorf("mute toggled %d times while held, want 1", toggles)
	}

	input.pressed = nil
	ks.Update(1.0 / 60)
	input.pressed = []ebiten.Key{ebiten.KeyM}
	ks.Update(1.0 / 60)
	if toggles != 2 {
		t.Errorf("mute toggled %d times after re-press, want 2", toggles)
	}
	if interactions != 2 {
		t.Errorf("OnInteract called %d times, want 2", interactions)
	}
}

func TestKeyboardSecretCode(t *testing.T) {
	f, _, ks, input := newKeyboardFixture(t)

	// 前面的无关输入不影响匹配，大小写不敏感
	input.chars = []rune("xxOp")
	ks.Update(1.0 / 60)
	if f.secrets != 0 {
		t.Fatal("secret triggered too early")
	}
	input.chars = []rune("EN")
	ks.Update(1.0 / 60)
	if f.secrets != 1 {
		t.Fatalf("secret triggered %d times, want 1", f.secrets)
	}
	if !f.wearable(t, "cape").Snapped {
		t.Error("cape should be snapped after the secret code")
	}

	// 触发后窗口清空，需要重新完整输入
	input.chars = []rune("n")
	ks.Update(1.0 / 60)
	if f.secrets != 1 {
		t.Errorf("secret re-triggered without a full code")
	}
}

func TestKeyboardWithoutSecret(t *testing.T) {
	f := newWardrobeFixture(t)
	input := &mockKeyboardInput{chars: []rune("open")}
	ks := NewKeyboardSystemWithInput(nil, f.ws, "", input)
	ks.Update(1.0 / 60)
	if f.secrets != 0 {
		t.Error("empty secret code must never trigger")
	}
}
