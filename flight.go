package flightpath

import (
	"fmt"

	"github.com/solarlune/flightpath/math32"
)

// FlightPhase is the stage a WinFlight is in. Phases only ever move forward.
type FlightPhase int

const (
	FlightIdle          FlightPhase = iota // Not started
	FlightApproach                         // Gliding to the center, facing the direction of travel
	FlightOrient                           // Turning in place to face the viewer
	FlightClimbAndAlign                    // Climbing, then turning to the departure heading while drifting
	FlightDepart                           // Moving to the exit pose
	FlightDone                             // Finished; no further updates
)

func (p FlightPhase) String() string {
	switch p {
	case FlightIdle:
		return "idle"
	case FlightApproach:
		return "approach"
	case FlightOrient:
		return "orient"
	case FlightClimbAndAlign:
		return "climb-and-align"
	case FlightDepart:
		return "depart"
	case FlightDone:
		return "done"
	}
	return fmt.Sprintf("FlightPhase(%d)", int(p))
}

// FlightTuning configures the WinFlight.
type FlightTuning struct {
	Start          Vector3 `yaml:"start"` // Where the win bird appears once the game is won
	StartYaw       float32 `yaml:"startYaw"`
	Center         Vector3 `yaml:"center"` // Approach target; Y is ignored and the start height is kept
	CenterDuration float32 `yaml:"centerDuration"`
	TravelYawK     float32 `yaml:"travelYawK"`
	ViewerDir      Vector3 `yaml:"viewerDir"`
	TurnDuration   float32 `yaml:"turnDuration"`
	Climb          float32 `yaml:"climb"`
	ClimbDuration  float32 `yaml:"climbDuration"`
	AlignDuration  float32 `yaml:"alignDuration"`
	DriftFrac      float32 `yaml:"driftFrac"` // Fraction of the departure leg drifted through while aligning, clamped to 0.5
	DriftK         float32 `yaml:"driftK"`
	DepartUp       float32 `yaml:"departUp"`
	DepartZ        float32 `yaml:"departZ"`
	DepartDuration float32 `yaml:"departDuration"`
	DepartK        float32 `yaml:"departK"` // Damping strength for the heading while departing
}

// Validate returns a *ConfigError if any duration or rate isn't positive.
func (ft FlightTuning) Validate() error {

	durations := []struct {
		field string
		d     float32
	}{
		{"flight.centerDuration", ft.CenterDuration},
		{"flight.turnDuration", ft.TurnDuration},
		{"flight.climbDuration", ft.ClimbDuration},
		{"flight.alignDuration", ft.AlignDuration},
		{"flight.departDuration", ft.DepartDuration},
	}

	for _, d := range durations {
		if err := positiveDuration(d.field, d.d); err != nil {
			return err
		}
	}

	rates := []struct {
		field string
		k     float32
	}{
		{"flight.travelYawK", ft.TravelYawK},
		{"flight.driftK", ft.DriftK},
		{"flight.departK", ft.DepartK},
	}

	for _, r := range rates {
		if err := positiveRate(r.field, r.k); err != nil {
			return err
		}
	}

	if ft.ViewerDir.SetY(0).IsZero() {
		return configErr("flight.viewerDir", fmt.Errorf("no horizontal direction: %w", ErrDegenerateCurve))
	}

	return nil

}

// WinFlight is the time-driven flight the win bird makes after the game is won. Each phase runs on its own timer,
// and the pose a phase ends on is the pose the next one starts from.
//
// Position and yaw each follow one law per phase: eased interpolation between fixed endpoints, or damping toward
// a target that itself moves along an eased path. Eased targets are computed from the phase timer only.
type WinFlight struct {
	tuning FlightTuning

	phase    FlightPhase
	aligning bool // Second half of FlightClimbAndAlign
	timer    float32

	position Vector3
	yaw      float32

	start       Vector3
	center      Vector3
	climbStart  Vector3
	climbEnd    Vector3
	departStart Vector3
	departEnd   Vector3
	drift       Vector3

	orientStartYaw float32
	alignStartYaw  float32
	departYaw      float32

	handedOff bool
}

// NewWinFlight validates the tuning and returns an idle WinFlight sitting at the tuning's start pose.
func NewWinFlight(tuning FlightTuning) (*WinFlight, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	return &WinFlight{tuning: tuning, position: tuning.Start, yaw: tuning.StartYaw}, nil
}

// Start begins the flight from the pose given. It does nothing if the flight has already started.
func (f *WinFlight) Start(position Vector3, yaw float32) bool {

	if f.phase != FlightIdle {
		return false
	}

	f.position = position
	f.yaw = yaw
	f.start = position
	f.center = Vector3{X: f.tuning.Center.X, Y: position.Y, Z: f.tuning.Center.Z}
	f.phase = FlightApproach
	f.timer = 0

	return true

}

// Phase returns the current phase.
func (f *WinFlight) Phase() FlightPhase {
	return f.phase
}

// Aligning returns if the flight is in the turn-and-drift half of FlightClimbAndAlign.
func (f *WinFlight) Aligning() bool {
	return f.phase == FlightClimbAndAlign && f.aligning
}

// Active returns if the flight has started and isn't done.
func (f *WinFlight) Active() bool {
	return f.phase != FlightIdle && f.phase != FlightDone
}

// Done returns if the flight has finished.
func (f *WinFlight) Done() bool {
	return f.phase == FlightDone
}

// Position returns the bird's current position.
func (f *WinFlight) Position() Vector3 {
	return f.position
}

// Yaw returns the bird's current heading in radians.
func (f *WinFlight) Yaw() float32 {
	return f.yaw
}

// Update advances the flight by dt seconds. It returns true exactly once: on the frame the departure finishes.
func (f *WinFlight) Update(dt float32) (handoffReady bool) {

	if !f.Active() || !(dt > 0) {
		return false
	}

	f.timer += dt

	switch f.phase {

	case FlightApproach:

		k := EaseOutCubic.Apply(f.timer / f.tuning.CenterDuration)
		f.position = f.start.Lerp(f.center, k)

		travel := f.center.Sub(f.position).SetY(0)
		if travel.MagnitudeSquared() > 1e-6 {
			f.yaw = math32.DampAngle(f.yaw, travel.Yaw(), f.tuning.TravelYawK, dt)
		}

		if f.timer >= f.tuning.CenterDuration {
			f.position = f.center
			f.orientStartYaw = f.yaw
			f.enter(FlightOrient)
		}

	case FlightOrient:

		k := math32.Smoothstep(f.timer / f.tuning.TurnDuration)
		f.yaw = math32.LerpAngle(f.orientStartYaw, f.tuning.ViewerDir.Yaw(), k)

		if f.timer >= f.tuning.TurnDuration {
			f.climbStart = f.position
			f.climbEnd = f.position.Add(Vector3{Y: f.tuning.Climb})
			f.aligning = false
			f.enter(FlightClimbAndAlign)
		}

	case FlightClimbAndAlign:

		if !f.aligning {

			f.position = f.climbStart.Lerp(f.climbEnd, math32.Smoothstep(f.timer/f.tuning.ClimbDuration))

			if f.timer >= f.tuning.ClimbDuration {
				f.position = f.climbEnd
				f.departStart = f.position
				f.departEnd = f.position.Add(Vector3{Y: f.tuning.DepartUp, Z: f.tuning.DepartZ})
				f.departYaw = f.departEnd.Sub(f.departStart).Yaw()
				f.alignStartYaw = f.yaw
				f.drift = f.departStart.Lerp(f.departEnd, math32.Clamp(f.tuning.DriftFrac, 0, 0.5))
				f.aligning = true
				f.timer = 0
			}

			break

		}

		f.position = f.position.Damp(f.drift, f.tuning.DriftK, dt)
		f.yaw = math32.LerpAngle(f.alignStartYaw, f.departYaw, math32.Smoothstep(f.timer/f.tuning.AlignDuration))

		if f.timer >= f.tuning.AlignDuration {
			f.departStart = f.position
			f.enter(FlightDepart)
		}

	case FlightDepart:

		f.position = f.departStart.Lerp(f.departEnd, math32.Smoothstep(f.timer/f.tuning.DepartDuration))
		f.yaw = math32.DampAngle(f.yaw, f.departYaw, f.tuning.DepartK, dt)

		if f.timer >= f.tuning.DepartDuration {
			f.position = f.departEnd
			f.enter(FlightDone)
			if !f.handedOff {
				f.handedOff = true
				return true
			}
		}

	}

	return false

}

func (f *WinFlight) enter(phase FlightPhase) {
	f.phase = phase
	f.timer = 0
}
