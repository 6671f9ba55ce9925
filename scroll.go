package flightpath

import (
	"github.com/solarlune/flightpath/math32"
)

// ScrollSignal turns raw scroll input into the smoothed progress the sequencers are driven by.
// The raw offset runs from 0 to 1 over the whole scroll area; Progress scales the smoothed offset by the page count.
//
// A ScrollSignal can be gated: while the gate timer runs or the signal is disabled, input is dropped and the offset
// is held at 0, and once both clear it is held at 0 for a few more frames before input counts.
type ScrollSignal struct {
	tuning ScrollTuning

	raw    float32
	smooth float32

	gate         float32
	clampFrames  int
	unlocked     bool
	enabled      bool
	userScrolled bool
}

// NewScrollSignal returns an enabled, ungated ScrollSignal at offset 0.
func NewScrollSignal(tuning ScrollTuning) (*ScrollSignal, error) {
	if err := tuning.validate("scroll"); err != nil {
		return nil, err
	}
	return &ScrollSignal{tuning: tuning, enabled: true, unlocked: true}, nil
}

// Tuning returns the pages and smoothing the signal runs with.
func (s *ScrollSignal) Tuning() ScrollTuning {
	return s.tuning
}

// SetTuning swaps the page count and smoothing strength, keeping the current offset. An invalid tuning is ignored
// and its error returned.
func (s *ScrollSignal) SetTuning(tuning ScrollTuning) error {
	if err := tuning.validate("scroll"); err != nil {
		return err
	}
	s.tuning = tuning
	return nil
}

// Reset moves the signal back to offset 0 and gates it for gate seconds, followed by clampFrames frames.
// It also clears UserScrolled.
func (s *ScrollSignal) Reset(gate float32, clampFrames int) {
	s.raw = 0
	s.smooth = 0
	s.gate = math32.Max(gate, 0)
	s.clampFrames = clampFrames
	s.unlocked = false
	s.userScrolled = false
}

// SetEnabled enables or disables the signal. A disabled signal drops input and holds at 0 until it has been
// unlocked once.
func (s *ScrollSignal) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// Enabled returns if the signal is enabled.
func (s *ScrollSignal) Enabled() bool {
	return s.enabled
}

// Locked returns if input is currently being dropped.
func (s *ScrollSignal) Locked() bool {
	return s.gate > 0 || !s.enabled
}

// Gated returns if the signal is still being held at 0 (gated, disabled, or clamping frames after unlock).
func (s *ScrollSignal) Gated() bool {
	return !s.unlocked
}

// UserScrolled returns if input has been accepted since the last Reset.
func (s *ScrollSignal) UserScrolled() bool {
	return s.userScrolled
}

// Scroll moves the raw offset by deltaPages pages. It's dropped while the signal is locked.
func (s *ScrollSignal) Scroll(deltaPages float32) {

	if s.Locked() || !math32.IsFinite(deltaPages) {
		return
	}

	s.userScrolled = true
	s.raw = math32.Clamp01(s.raw + deltaPages/s.tuning.Pages)

}

// SetOffset sets the raw offset directly (clamped to 0 to 1). It doesn't count as user input.
func (s *ScrollSignal) SetOffset(offset float32) {
	s.raw = math32.Clamp01(offset)
}

// Snap moves the smoothed offset onto the raw offset.
func (s *ScrollSignal) Snap() {
	s.smooth = s.raw
}

// Update advances the gate and smooths the offset toward the raw value.
func (s *ScrollSignal) Update(dt float32) {

	if dt > 0 && s.gate > 0 {
		s.gate = math32.Max(s.gate-dt, 0)
	}

	if !s.unlocked {

		if s.Locked() {
			s.raw, s.smooth = 0, 0
			return
		}

		if s.clampFrames > 0 {
			s.raw, s.smooth = 0, 0
			s.clampFrames--
			return
		}

		s.unlocked = true

	}

	s.smooth = math32.Damp(s.smooth, s.raw, s.tuning.K, dt)

}

// Offset returns the smoothed offset, from 0 to 1.
func (s *ScrollSignal) Offset() float32 {
	return s.smooth
}

// RawOffset returns the offset before smoothing.
func (s *ScrollSignal) RawOffset() float32 {
	return s.raw
}

// Progress returns the smoothed offset scaled by the page count.
func (s *ScrollSignal) Progress() float32 {
	return s.smooth * s.tuning.Pages
}
