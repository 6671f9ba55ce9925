package soundtrack

import (
	"errors"
	"testing"
)

type fakeTrack struct {
	playing bool
	volume  float64
	plays   int
}

func (f *fakeTrack) Play()               { f.playing = true; f.plays++ }
func (f *fakeTrack) Pause()              { f.playing = false }
func (f *fakeTrack) IsPlaying() bool     { return f.playing }
func (f *fakeTrack) SetVolume(v float64) { f.volume = v }

func TestPlayerStartsDisabled(t *testing.T) {

	track := &fakeTrack{}
	p := NewPlayer(track)

	if p.Enabled() || p.Playing() {
		t.Fatal("a new player shouldn't play")
	}

	if track.volume != 1 {
		t.Errorf("initial volume = %v, want 1", track.volume)
	}

}

func TestPlayerToggle(t *testing.T) {

	track := &fakeTrack{}
	p := NewPlayer(track)

	if !p.Toggle() || !p.Playing() {
		t.Fatal("toggle should start playback")
	}

	p.SetEnabled(true)
	if track.plays != 1 {
		t.Errorf("enabling twice played %d times, want 1", track.plays)
	}

	if p.Toggle() || p.Playing() {
		t.Fatal("toggle should pause playback")
	}

}

func TestPlayerVolumeClamps(t *testing.T) {

	track := &fakeTrack{}
	p := NewPlayer(track)

	p.SetVolume(3)
	if track.volume != 1 {
		t.Errorf("volume = %v, want 1", track.volume)
	}

	p.SetVolume(-1)
	if p.Volume() != 0 || track.volume != 0 {
		t.Errorf("volume = %v, want 0", p.Volume())
	}

}

func TestDecodeRejectsUnknownFormats(t *testing.T) {

	// The format is checked before the context is touched.
	if _, err := Decode(nil, "theme.wav", nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}

}
