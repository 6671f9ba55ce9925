// soundtrack plays the looping background music and follows the user's sound preference.
package soundtrack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

// SampleRate is the sample rate of the audio context the soundtrack expects.
const SampleRate = 48000

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Track is the playback surface the Player drives; *audio.Player satisfies it.
type Track interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
}

// Player plays a Track on loop while sound is enabled.
type Player struct {
	track   Track
	enabled bool
	volume  float64
}

// NewPlayer returns a Player for track. It starts disabled.
func NewPlayer(track Track) *Player {
	p := &Player{track: track, volume: 1}
	track.SetVolume(p.volume)
	return p
}

// Decode decodes an MP3 or Ogg Vorbis stream (picked by the extension of name) and loops it forever in a new
// audio player on ctx. The stream is resampled to ctx's sample rate.
func Decode(ctx *audio.Context, name string, data []byte) (*audio.Player, error) {

	reader := bytes.NewReader(data)

	var stream interface {
		io.ReadSeeker
		Length() int64
	}

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decoding mp3 %s: %w", name, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decoding ogg %s: %w", name, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("creating player for %s: %w", name, err)
	}

	return player, nil

}

// Load decodes data with Decode and wraps the result in a Player.
func Load(ctx *audio.Context, name string, data []byte) (*Player, error) {
	track, err := Decode(ctx, name, data)
	if err != nil {
		return nil, err
	}
	return NewPlayer(track), nil
}

// SetEnabled starts or pauses playback.
func (p *Player) SetEnabled(enabled bool) {

	if p.enabled == enabled {
		return
	}

	p.enabled = enabled

	if enabled {
		p.track.Play()
		log.Printf("[Soundtrack] Playing")
	} else {
		p.track.Pause()
		log.Printf("[Soundtrack] Paused")
	}

}

// Toggle flips playback and returns if it's now enabled.
func (p *Player) Toggle() bool {
	p.SetEnabled(!p.enabled)
	return p.enabled
}

// Enabled returns if the soundtrack should be playing.
func (p *Player) Enabled() bool {
	return p.enabled
}

// Playing returns if the underlying track is actually playing.
func (p *Player) Playing() bool {
	return p.track.IsPlaying()
}

// SetVolume sets the volume, clamped to 0 to 1.
func (p *Player) SetVolume(volume float64) {
	p.volume = min(max(volume, 0), 1)
	p.track.SetVolume(p.volume)
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	return p.volume
}
