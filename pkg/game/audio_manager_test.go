package game

import (
	"testing"

	"github.com/decker502/dressup/pkg/config"
)

type fakePlayer struct {
	playing bool
	volume  float64
	plays   int
}

func (p *fakePlayer) Play()                    { p.playing = true; p.plays++ }
func (p *fakePlayer) Pause()                   { p.playing = false }
func (p *fakePlayer) IsPlaying() bool          { return p.playing }
func (p *fakePlayer) SetVolume(volume float64) { p.volume = volume }

func TestAudioManagerStartsOnFirstInteraction(t *testing.T) {
	player := &fakePlayer{}
	am := NewAudioManager(player, NewSettingsManager(nil))

	if player.playing {
		t.Fatal("music should not play before the first interaction")
	}
	want := float64(config.DefaultVolumeSteps) / float64(config.MaxVolumeSteps)
	if player.volume != want {
		t.Errorf("initial volume = %v, want %v", player.volume, want)
	}

	am.Interact()
	am.Interact()
	if !player.playing || player.plays != 1 {
		t.Errorf("playing=%v plays=%d, want playing once", player.playing, player.plays)
	}
}

func TestAudioManagerMute(t *testing.T) {
	player := &fakePlayer{}
	sm := NewSettingsManager(nil)
	am := NewAudioManager(player, sm)
	am.SetVolumeSteps(15)

	if !am.ToggleMute() {
		t.Fatal("ToggleMute should report muted")
	}
	if player.volume != 0 || !sm.GetSettings().Muted {
		t.Errorf("muted: volume=%v settings=%+v", player.volume, *sm.GetSettings())
	}

	if am.ToggleMute() {
		t.Fatal("second ToggleMute should unmute")
	}
	if player.volume != 1 {
		t.Errorf("unmuted volume = %v, want 1", player.volume)
	}
}

func TestAudioManagerVolumeSteps(t *testing.T) {
	tests := []struct {
		steps int
		want  float64
	}{
		{0, 0},
		{3, 0.2},
		{15, 1},
		{20, 1},
	}
	for _, tt := range tests {
		player := &fakePlayer{}
		am := NewAudioManager(player, NewSettingsManager(nil))
		am.SetVolumeSteps(tt.steps)
		if player.volume != tt.want {
			t.Errorf("SetVolumeSteps(%d): volume = %v, want %v", tt.steps, player.volume, tt.want)
		}
	}
}

func TestAudioManagerWithoutPlayer(t *testing.T) {
	am := NewAudioManager(nil, NewSettingsManager(nil))
	am.Interact()
	am.ToggleMute()
	am.SetVolumeSteps(4)
	if !am.Started() || !am.Muted() || am.VolumeSteps() != 4 {
		t.Errorf("state = started:%v muted:%v steps:%d", am.Started(), am.Muted(), am.VolumeSteps())
	}

	t.Run("资源加载后替换播放器", func(t *testing.T) {
		player := &fakePlayer{}
		am.SetPlayer(player)
		if !player.playing {
			t.Error("late player should start since music already started")
		}
		if player.volume != 0 {
			t.Errorf("late player volume = %v, want 0 (muted)", player.volume)
		}
	})
}
