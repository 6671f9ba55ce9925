package flightpath

import (
	"github.com/solarlune/flightpath/math32"
)

// FollowTuning configures the FollowCamera.
type FollowTuning struct {
	DeltaY        float32 `yaml:"deltaY"`        // How far the bird rises above its start height before the camera locks
	BlendDuration float32 `yaml:"blendDuration"` // Seconds to blend from the captured pose onto the bird
	FollowK       float32 `yaml:"followK"`
	LookK         float32 `yaml:"lookK"`
	LockBlend     float32 `yaml:"lockBlend"`    // Seconds the look-at takes to settle on the lock target
	HeightOffset  float32 `yaml:"heightOffset"` // Camera height above the bird while following
	LookDistance  float32 `yaml:"lookDistance"` // Distance ahead of the camera its current look-at point is taken to be
}

// Validate returns a *ConfigError if any duration, rate, or distance isn't positive.
func (ft FollowTuning) Validate() error {

	if err := positiveDuration("follow.blendDuration", ft.BlendDuration); err != nil {
		return err
	}
	if err := positiveDuration("follow.lockBlend", ft.LockBlend); err != nil {
		return err
	}
	if err := positiveRate("follow.followK", ft.FollowK); err != nil {
		return err
	}
	if err := positiveRate("follow.lookK", ft.LookK); err != nil {
		return err
	}
	if err := positiveDuration("follow.lookDistance", ft.LookDistance); err != nil {
		return err
	}
	return nil

}

// FollowCamera keeps the camera on the win bird while it climbs. The camera stays at the XZ position it was at when
// the flight started and only moves vertically; its look-at point blends onto the bird, follows it, and then locks.
type FollowCamera struct {
	tuning FollowTuning

	started bool
	locked  bool

	pose      CameraPose
	stopY     float32
	startY    float32
	startLook Vector3

	blending   bool
	blendTimer float32

	lockTimer float32
	lockFrom  Vector3
	lockTo    Vector3
}

// NewFollowCamera validates the tuning and returns an idle FollowCamera.
func NewFollowCamera(tuning FollowTuning) (*FollowCamera, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	return &FollowCamera{tuning: tuning}, nil
}

// Start captures the camera pose the follow camera takes over from, and the bird's position at the start of the
// flight (which sets the height at which the camera locks).
func (fc *FollowCamera) Start(camera CameraPose, bird Vector3) {

	fc.started = true
	fc.locked = false
	fc.pose = camera
	fc.startY = camera.Position.Y
	fc.startLook = fc.lookPoint()
	fc.pose.Target = fc.startLook
	fc.stopY = bird.Y + fc.tuning.DeltaY
	fc.blending = true
	fc.blendTimer = 0

}

// lookPoint returns the point LookDistance in front of the camera, along its current view direction.
func (fc *FollowCamera) lookPoint() Vector3 {
	return fc.pose.Position.Add(fc.pose.Direction().Scale(fc.tuning.LookDistance))
}

// Started returns if Start has been called.
func (fc *FollowCamera) Started() bool {
	return fc.started
}

// Locked returns if the camera has stopped following.
func (fc *FollowCamera) Locked() bool {
	return fc.locked
}

// Pose returns the camera pose as of the last update.
func (fc *FollowCamera) Pose() CameraPose {
	return fc.pose
}

// Lock stops following; the camera holds its position while the look-at settles on target over LockBlend seconds.
// Locking an already locked camera does nothing.
func (fc *FollowCamera) Lock(target Vector3) {

	if !fc.started || fc.locked {
		return
	}

	fc.locked = true
	fc.blending = false
	fc.lockTimer = 0
	fc.lockFrom = fc.lookPoint()
	fc.lockTo = target

}

// Update moves the camera for the frame and returns the new pose. The camera only follows while the flight is
// climbing and aligning; it locks when the bird has risen far enough or when the departure starts.
func (fc *FollowCamera) Update(bird Vector3, phase FlightPhase, dt float32) CameraPose {

	if !fc.started {
		return fc.pose
	}

	if !fc.locked && phase >= FlightDepart {
		fc.Lock(bird)
	}

	if fc.locked {
		fc.lockTimer = math32.Min(fc.lockTimer+dt, fc.tuning.LockBlend)
		k := math32.Smoothstep(fc.lockTimer / fc.tuning.LockBlend)
		fc.pose.Target = fc.lockFrom.Lerp(fc.lockTo, k)
		return fc.pose
	}

	if phase != FlightClimbAndAlign {
		return fc.pose
	}

	targetY := bird.Y + fc.tuning.HeightOffset

	if fc.blending {

		fc.blendTimer += dt
		k := math32.Smoothstep(fc.blendTimer / fc.tuning.BlendDuration)

		fc.pose.Position.Y = math32.Lerp(fc.startY, targetY, k)
		fc.pose.Target = fc.startLook.Lerp(bird, k)

		if fc.blendTimer >= fc.tuning.BlendDuration {
			fc.blending = false
		}

		return fc.pose

	}

	if bird.Y >= fc.stopY {
		fc.Lock(bird)
		return fc.pose
	}

	fc.pose.Position.Y = math32.Damp(fc.pose.Position.Y, targetY, fc.tuning.FollowK, dt)
	fc.pose.Target = fc.pose.Target.Damp(bird, fc.tuning.LookK, dt)

	return fc.pose

}
