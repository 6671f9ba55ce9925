package flightpath

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// HandoffTuning configures the move of the bird from the end of its win flight into the second scene.
type HandoffTuning struct {
	To           Vector3 `yaml:"to"`           // The bird's starting position in the second scene
	Duration     float32 `yaml:"duration"`     // Seconds
	CameraOffset Vector3 `yaml:"cameraOffset"` // The second scene's camera position, relative to To
}

// Validate returns a *ConfigError if the duration isn't positive.
func (ht HandoffTuning) Validate() error {
	return positiveDuration("handoff.duration", ht.Duration)
}

// CameraPose returns the second scene's starting camera pose, looking at the bird at position.
func (ht HandoffTuning) CameraPose(position Vector3) CameraPose {
	return CameraPose{Position: ht.To.Add(ht.CameraOffset), Target: position}
}

// Handoff tweens the bird linearly from where the win flight left it to its starting position in the second scene.
// It can only be triggered once.
type Handoff struct {
	tuning HandoffTuning
	tweens [3]*gween.Tween

	from      Vector3
	position  Vector3
	triggered bool
	done      bool
}

// NewHandoff validates the tuning and returns an untriggered Handoff.
func NewHandoff(tuning HandoffTuning) (*Handoff, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	return &Handoff{tuning: tuning}, nil
}

// Trigger starts the tween from the position given. It returns false, and does nothing, if the Handoff was
// already triggered.
func (h *Handoff) Trigger(from Vector3) bool {

	if h.triggered {
		return false
	}

	h.triggered = true
	h.from = from
	h.position = from

	to := h.tuning.To
	h.tweens = [3]*gween.Tween{
		gween.New(from.X, to.X, h.tuning.Duration, ease.Linear),
		gween.New(from.Y, to.Y, h.tuning.Duration, ease.Linear),
		gween.New(from.Z, to.Z, h.tuning.Duration, ease.Linear),
	}

	return true

}

// Update advances the tween by dt seconds and returns the bird's position, and whether the tween has finished.
// Before Trigger it returns the zero vector and false; once finished it keeps returning the end position and true.
func (h *Handoff) Update(dt float32) (Vector3, bool) {

	if !h.triggered {
		return Vector3{}, false
	}

	if h.done {
		return h.position, true
	}

	x, finished := h.tweens[0].Update(dt)
	y, _ := h.tweens[1].Update(dt)
	z, _ := h.tweens[2].Update(dt)

	h.position = Vector3{x, y, z}

	if finished {
		h.position = h.tuning.To
		h.done = true
	}

	return h.position, h.done

}

// Triggered returns if Trigger has been called.
func (h *Handoff) Triggered() bool {
	return h.triggered
}

// Active returns if the tween is running.
func (h *Handoff) Active() bool {
	return h.triggered && !h.done
}

// Done returns if the tween has finished.
func (h *Handoff) Done() bool {
	return h.done
}

// From returns the position the tween started from.
func (h *Handoff) From() Vector3 {
	return h.from
}

// Position returns the bird's current position along the tween.
func (h *Handoff) Position() Vector3 {
	return h.position
}

// CameraPose returns the camera pose for the current frame of the tween: the second scene's start position,
// looking at the bird.
func (h *Handoff) CameraPose() CameraPose {
	return h.tuning.CameraPose(h.position)
}
