package flightpath

import (
	"fmt"

	"github.com/solarlune/flightpath/math32"
)

// GardenTuning configures the second scene, where the bird flies up through a ring of phrases.
type GardenTuning struct {
	Scroll     ScrollTuning  `yaml:"scroll"`
	Gate       float32       `yaml:"gate"`       // Seconds the scroll is held at 0 after the scene starts
	GateFrames int           `yaml:"gateFrames"` // Frames the scroll is held at 0 after the gate clears
	Windows    []PhaseWindow `yaml:"windows"`    // Must include "phrases" and "flight", in that order
	Phrases    []string      `yaml:"phrases"`

	RingCenter Vector3 `yaml:"ringCenter"`
	RingRadius float32 `yaml:"ringRadius"`
	RingTurns  float32 `yaml:"ringTurns"` // Fraction of a full turn the phrases are spread over
	RingSpin   float32 `yaml:"ringSpin"`  // Turns the ring makes over the phrases window
	LogoRadius float32 `yaml:"logoRadius"`

	BirdZ       float32 `yaml:"birdZ"`
	BirdXOffset float32 `yaml:"birdXOffset"`
	Idle        Vector3 `yaml:"idle"` // X and Y the bird hovers around before the flight; Z is ignored
	IdleBob     float32 `yaml:"idleBob"`
	FlyEndX     float32 `yaml:"flyEndX"`
	FlyBaseY    float32 `yaml:"flyBaseY"`
	FlyPitch    float32 `yaml:"flyPitch"` // Height gained per phrase
	FlyLift     float32 `yaml:"flyLift"`

	Background     PhaseWindow `yaml:"background"`
	BackgroundFrom Color       `yaml:"backgroundFrom"`
	BackgroundTo   Color       `yaml:"backgroundTo"`

	CameraDepth float32 `yaml:"cameraDepth"` // Camera Z at the end of the scroll
	CameraK     float32 `yaml:"cameraK"`
	ExitAt      float32 `yaml:"exitAt"`
}

// Validate checks the GardenTuning by building a sequencer from it.
func (gt GardenTuning) Validate() error {
	_, err := NewGardenSequencer(gt)
	return err
}

// FlyEndY returns the height the bird finishes its flight at, which rises with the number of phrases.
func (gt GardenTuning) FlyEndY() float32 {
	n := math32.Max(len(gt.Phrases), 1)
	return gt.FlyBaseY + float32(n-1)*gt.FlyPitch + gt.FlyLift
}

// GardenFrame is what the second scene looks like at one scroll offset.
type GardenFrame struct {
	T           float32
	Selection   Selection
	Phase       string
	ActiveIndex int
	Phrases     []Vector3
	Logo        Vector3
	Bird        Vector3 // Written directly
	BirdYaw     float32 // Written directly
	Background  Color
	Camera      CameraPose // Position is a target and damped; Target is the bird and written directly
	ExitReached bool
}

// GardenSequencer maps the second scene's scroll offset (0 to 1) to phrase, logo, bird, and camera placement.
// Evaluate is a pure function of t.
type GardenSequencer struct {
	tuning   GardenTuning
	timeline *Timeline
	phrases  int
	flight   int
}

// NewGardenSequencer validates the tuning and returns a sequencer.
func NewGardenSequencer(tuning GardenTuning) (*GardenSequencer, error) {

	if err := tuning.Scroll.validate("garden.scroll"); err != nil {
		return nil, err
	}

	if tuning.Gate < 0 || !math32.IsFinite(tuning.Gate) {
		return nil, configErr("garden.gate", fmt.Errorf("%v: %w", tuning.Gate, ErrNonPositiveDuration))
	}

	if tuning.GateFrames < 0 {
		return nil, configErr("garden.gateFrames", fmt.Errorf("%d: %w", tuning.GateFrames, ErrNonPositiveDuration))
	}

	timeline, err := NewTimeline(tuning.Windows...)
	if err != nil {
		return nil, prefixField("garden.windows", err)
	}

	gs := &GardenSequencer{
		tuning:   tuning,
		timeline: timeline,
		phrases:  timeline.Find("phrases"),
		flight:   timeline.Find("flight"),
	}

	if gs.phrases < 0 || gs.flight < 0 || gs.flight < gs.phrases {
		return nil, configErr("garden.windows", fmt.Errorf("want phrases before flight: %w", ErrUnorderedWindows))
	}

	if timeline.Start() < 0 || timeline.End() > 1 {
		return nil, configErr("garden.windows", fmt.Errorf("%v to %v is outside of 0 to 1: %w", timeline.Start(), timeline.End(), ErrUnorderedWindows))
	}

	if len(tuning.Phrases) == 0 {
		return nil, configErr("garden.phrases", ErrEmptyWindow)
	}

	if err := tuning.Background.Validate(); err != nil {
		return nil, configErr("garden.background", err)
	}

	if err := positiveRate("garden.cameraK", tuning.CameraK); err != nil {
		return nil, err
	}

	if !(tuning.ExitAt > 0) || tuning.ExitAt > 1 {
		return nil, configErr("garden.exitAt", fmt.Errorf("%v: %w", tuning.ExitAt, ErrEmptyWindow))
	}

	return gs, nil

}

// Tuning returns the tuning the sequencer was built from.
func (gs *GardenSequencer) Tuning() GardenTuning {
	return gs.tuning
}

// Timeline returns the garden Timeline.
func (gs *GardenSequencer) Timeline() *Timeline {
	return gs.timeline
}

// ActiveIndex returns which phrase is active at t. The phrases window is split evenly between the phrases;
// before it the first is active and after it the last.
func (gs *GardenSequencer) ActiveIndex(t float32) int {
	count := len(gs.tuning.Phrases)
	local := math32.Clamp(gs.timeline.Window(gs.phrases).Local(t), 0, 0.999999)
	return math32.Clamp(int(math32.Floor(local*float32(count))), 0, count-1)
}

// Evaluate returns the frame for scroll offset t.
func (gs *GardenSequencer) Evaluate(t float32) GardenFrame {

	if math32.IsNaN(t) {
		t = 0
	}
	t = math32.Clamp01(t)

	tuning := gs.tuning
	sel := gs.timeline.Select(t)

	frame := GardenFrame{
		T:           t,
		Selection:   sel,
		Phase:       gs.timeline.Window(sel.Current).Name,
		ActiveIndex: gs.ActiveIndex(t),
		ExitReached: t >= tuning.ExitAt,
	}

	// Phrase ring
	phraseWindow := gs.timeline.Window(gs.phrases)
	spin := -phraseWindow.Local(t) * math32.Pi * 2 * tuning.RingSpin
	step := tuning.RingTurns * math32.Pi * 2 / float32(math32.Max(len(tuning.Phrases)-1, 1))

	frame.Phrases = make([]Vector3, len(tuning.Phrases))
	for i := range tuning.Phrases {
		a := float32(i)*step + spin
		frame.Phrases[i] = tuning.RingCenter.Add(Vector3{
			X: tuning.RingRadius * math32.Cos(a),
			Z: tuning.RingRadius * math32.Sin(a),
		})
	}

	// Logo orbit
	logoAngle := t*math32.Pi*2 + math32.Pi
	frame.Logo = tuning.RingCenter.Add(Vector3{
		X: tuning.LogoRadius * math32.Sin(logoAngle),
		Z: tuning.LogoRadius * math32.Cos(logoAngle),
	})

	// Bird
	flightWindow := gs.timeline.Window(gs.flight)
	fly := flightWindow.Progress(t)
	start := gs.idle(math32.Min(t, flightWindow.Start))

	x := math32.Lerp(start.X, tuning.FlyEndX, fly)
	y := math32.Lerp(start.Y, tuning.FlyEndY(), fly)

	frame.Bird = Vector3{X: x + tuning.BirdXOffset, Y: y, Z: tuning.BirdZ}
	frame.BirdYaw = t * math32.Pi

	frame.Background = tuning.BackgroundFrom.Lerp(tuning.BackgroundTo, tuning.Background.Progress(t))

	camY := math32.Lerp(tuning.Idle.Y, tuning.FlyEndY(), fly)
	frame.Camera = CameraPose{
		Position: Vector3{Y: camY, Z: t * tuning.CameraDepth},
		Target:   frame.Bird,
	}

	return frame

}

// idle returns the bird's hover position (before the X offset) at t.
func (gs *GardenSequencer) idle(t float32) Vector3 {
	bob := math32.Sin(t*math32.Pi*2) * gs.tuning.IdleBob
	return Vector3{X: gs.tuning.Idle.X + bob, Y: gs.tuning.Idle.Y + bob}
}
