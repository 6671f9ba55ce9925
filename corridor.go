package flightpath

import (
	"fmt"

	"github.com/solarlune/flightpath/math32"
)

// ScrollTuning configures a ScrollSignal: how many pages the scroll area spans, and how quickly the
// smoothed offset catches up with the raw one.
type ScrollTuning struct {
	Pages float32 `yaml:"pages"`
	K     float32 `yaml:"k"`
}

func (st ScrollTuning) validate(field string) error {
	if !(st.Pages > 0) || !math32.IsFinite(st.Pages) {
		return configErr(field+".pages", fmt.Errorf("%v: %w", st.Pages, ErrInvalidPages))
	}
	return positiveRate(field+".k", st.K)
}

// CorridorCameraTuning holds the corridor camera's offsets, look-at points, and curves.
type CorridorCameraTuning struct {
	OffsetStart      Vector3    `yaml:"offsetStart"`      // Offset from the bird at the start of the approach
	OffsetEnd        Vector3    `yaml:"offsetEnd"`        // Offset from the bird at the end of the approach
	OffsetBlendStart float32    `yaml:"offsetBlendStart"` // t at which the offset and look-at start blending
	LookCorridor     Vector3    `yaml:"lookCorridor"`     // Look-at point down the corridor
	LookBirdOffset   Vector3    `yaml:"lookBirdOffset"`   // Added to the bird's position to get the late approach look-at point
	Wide             CameraPose `yaml:"wide"`             // The wide shot the widen window ends on and the path window starts from
	PathBlendEnd     float32    `yaml:"pathBlendEnd"`     // Local path progress by which the curves have fully taken over
	FlatLookY        float32    `yaml:"flatLookY"`        // Look-at height held through the path
	ScreenLookStart  float32    `yaml:"screenLookStart"`  // Local path progress at which the look-at height starts lifting to the screen
	ScreenLook       Vector3    `yaml:"screenLook"`       // Focus point at the end of the path
	PathCurve        CurveSpec  `yaml:"pathCurve"`
	LookCurve        CurveSpec  `yaml:"lookCurve"`
	FollowK          float32    `yaml:"followK"` // Damping strength for the camera position outside of the approach
	LookK            float32    `yaml:"lookK"`   // Damping strength for the look-at target outside of the approach
}

// CorridorBirdTuning holds the corridor bird's flight in from the far end of the corridor.
type CorridorBirdTuning struct {
	Windows    []PhaseWindow `yaml:"windows"` // Two windows: the descent down the corridor, then the glide to the perch
	Start      Vector3       `yaml:"start"`
	Mid        Vector3       `yaml:"mid"`
	Perch      Vector3       `yaml:"perch"`
	Bob        float32       `yaml:"bob"` // Height of the full sine wobble during the descent
	Arc        float32       `yaml:"arc"` // Height of the half-sine arc during the glide
	Pitch      float32       `yaml:"pitch"`
	PitchK     float32       `yaml:"pitchK"`
	TurnWindow float32       `yaml:"turnWindow"` // t over which the bird turns around
	TurnYaw    float32       `yaml:"turnYaw"`
	YawK       float32       `yaml:"yawK"`
}

// TVTuning holds the screen's slide back into the room.
type TVTuning struct {
	Slide PhaseWindow `yaml:"slide"`
	Start Vector3     `yaml:"start"`
	End   Vector3     `yaml:"end"`
	K     float32     `yaml:"k"`
}

// PortalTuning holds the corridor portals, which fade in as the bird gets near.
type PortalTuning struct {
	Positions    []Vector3 `yaml:"positions"`
	AppearAt     float32   `yaml:"appearAt"` // Distance at which a portal is half faded in
	Fade         float32   `yaml:"fade"`     // Half the width of the fade, in world units
	K            float32   `yaml:"k"`
	VisibleAlpha float32   `yaml:"visibleAlpha"` // Portals at or below this opacity are hidden
}

// CorridorTuning configures the first scene.
type CorridorTuning struct {
	Scroll     ScrollTuning         `yaml:"scroll"`
	Windows    []PhaseWindow        `yaml:"windows"` // Must include "approach", "widen", and "path", in that order
	Background Color                `yaml:"background"`
	Camera     CorridorCameraTuning `yaml:"camera"`
	Bird       CorridorBirdTuning   `yaml:"bird"`
	TV         TVTuning             `yaml:"tv"`
	Portals    PortalTuning         `yaml:"portals"`
	Toggles    []Threshold          `yaml:"toggles"`
	GameToggle string               `yaml:"gameToggle"` // Name of the toggle whose rising edge mounts the game
}

// Validate checks the CorridorTuning by building a sequencer from it.
func (ct CorridorTuning) Validate() error {
	_, err := NewCorridorSequencer(ct)
	return err
}

// CorridorFrame is everything the corridor scene wants the world to look like at one scroll position.
// Fields marked as targets are smoothed toward by the Stage; the rest are written as-is.
type CorridorFrame struct {
	T            float32
	Selection    Selection
	Phase        string
	Camera       CameraPose // Target; written directly while CameraSnap is set, damped otherwise
	CameraSnap   bool
	BirdPosition Vector3 // Written directly
	BirdPitch    float32 // Target
	BirdYaw      float32 // Target
	TV           Vector3 // Target
	PortalAlpha  []float32
	Toggles      []bool // In the same order as CorridorTuning.Toggles
	Background   Color
}

// CorridorSequencer maps the first scene's scroll progress to camera, bird, screen, and portal targets.
// Evaluate is a pure function of t.
type CorridorSequencer struct {
	tuning       CorridorTuning
	timeline     *Timeline
	birdTimeline *Timeline
	pathCurve    *CatmullRomCurve
	lookCurve    *CatmullRomCurve

	approach, widen, path int
	gameToggle            int
	approachEnd           CameraPose
}

// NewCorridorSequencer validates the tuning, builds the camera curves, and returns a sequencer.
func NewCorridorSequencer(tuning CorridorTuning) (*CorridorSequencer, error) {

	cs := &CorridorSequencer{tuning: tuning, gameToggle: -1}

	if err := tuning.Scroll.validate("corridor.scroll"); err != nil {
		return nil, err
	}

	timeline, err := NewTimeline(tuning.Windows...)
	if err != nil {
		return nil, prefixField("corridor.windows", err)
	}
	cs.timeline = timeline

	cs.approach = timeline.Find("approach")
	cs.widen = timeline.Find("widen")
	cs.path = timeline.Find("path")

	if cs.approach != 0 || cs.widen != 1 || cs.path != 2 || timeline.Len() != 3 {
		return nil, configErr("corridor.windows", fmt.Errorf("want approach, widen, path: %w", ErrUnorderedWindows))
	}

	if len(tuning.Bird.Windows) != 2 {
		return nil, configErr("corridor.bird.windows", fmt.Errorf("want 2 windows, got %d: %w", len(tuning.Bird.Windows), ErrEmptyWindow))
	}

	cs.birdTimeline, err = NewTimeline(tuning.Bird.Windows...)
	if err != nil {
		return nil, prefixField("corridor.bird.windows", err)
	}

	if cs.pathCurve, err = tuning.Camera.PathCurve.Build(); err != nil {
		return nil, configErr("corridor.camera.pathCurve", err)
	}

	if cs.lookCurve, err = tuning.Camera.LookCurve.Build(); err != nil {
		return nil, configErr("corridor.camera.lookCurve", err)
	}

	if err := tuning.TV.Slide.Validate(); err != nil {
		return nil, configErr("corridor.tv.slide", err)
	}

	if !(tuning.Camera.PathBlendEnd > 0) || tuning.Camera.PathBlendEnd > 1 {
		return nil, configErr("corridor.camera.pathBlendEnd", fmt.Errorf("%v: %w", tuning.Camera.PathBlendEnd, ErrEmptyWindow))
	}

	if !(tuning.Camera.ScreenLookStart >= 0) || !(tuning.Camera.ScreenLookStart < 1) {
		return nil, configErr("corridor.camera.screenLookStart", fmt.Errorf("%v: %w", tuning.Camera.ScreenLookStart, ErrEmptyWindow))
	}

	if !(tuning.Bird.TurnWindow > 0) {
		return nil, configErr("corridor.bird.turnWindow", fmt.Errorf("%v: %w", tuning.Bird.TurnWindow, ErrNonPositiveDuration))
	}

	if !(tuning.Portals.Fade > 0) {
		return nil, configErr("corridor.portals.fade", fmt.Errorf("%v: %w", tuning.Portals.Fade, ErrNonPositiveDuration))
	}

	rates := []struct {
		field string
		k     float32
	}{
		{"corridor.camera.followK", tuning.Camera.FollowK},
		{"corridor.camera.lookK", tuning.Camera.LookK},
		{"corridor.bird.pitchK", tuning.Bird.PitchK},
		{"corridor.bird.yawK", tuning.Bird.YawK},
		{"corridor.tv.k", tuning.TV.K},
		{"corridor.portals.k", tuning.Portals.K},
	}

	for _, r := range rates {
		if err := positiveRate(r.field, r.k); err != nil {
			return nil, err
		}
	}

	for i, th := range tuning.Toggles {
		if th.Name == tuning.GameToggle {
			cs.gameToggle = i
		}
	}

	if tuning.GameToggle != "" && cs.gameToggle < 0 {
		return nil, configErr("corridor.gameToggle", fmt.Errorf("no toggle named %q: %w", tuning.GameToggle, ErrEmptyWindow))
	}

	cs.approachEnd = cs.approachPose(timeline.Window(cs.approach).End)

	return cs, nil

}

// Tuning returns the tuning the sequencer was built from.
func (cs *CorridorSequencer) Tuning() CorridorTuning {
	return cs.tuning
}

// Timeline returns the camera Timeline (approach, widen, path).
func (cs *CorridorSequencer) Timeline() *Timeline {
	return cs.timeline
}

// PathCurve returns the camera position curve.
func (cs *CorridorSequencer) PathCurve() *CatmullRomCurve {
	return cs.pathCurve
}

// PathWaypoints returns the camera path's control points joined by straight segments.
func (cs *CorridorSequencer) PathWaypoints() *Polyline {
	return NewPolyline(cs.pathCurve.ControlPoints()...)
}

// LookCurve returns the camera look-at curve.
func (cs *CorridorSequencer) LookCurve() *CatmullRomCurve {
	return cs.lookCurve
}

// GameToggle returns the index of the toggle that mounts the game, or -1 if there isn't one.
func (cs *CorridorSequencer) GameToggle() int {
	return cs.gameToggle
}

// Evaluate returns the frame for scroll progress t.
func (cs *CorridorSequencer) Evaluate(t float32) CorridorFrame {

	if math32.IsNaN(t) {
		t = 0
	}

	sel := cs.timeline.Select(t)

	frame := CorridorFrame{
		T:            t,
		Selection:    sel,
		Phase:        cs.timeline.Window(sel.Current).Name,
		BirdPosition: cs.BirdPosition(t),
		Background:   cs.tuning.Background,
	}

	frame.Camera, frame.CameraSnap = cs.CameraTarget(t)

	bird := cs.tuning.Bird

	if t <= cs.birdTimeline.End() {
		frame.BirdPitch = bird.Pitch
	}

	frame.BirdYaw = math32.Lerp(0, bird.TurnYaw, EaseOutCubic.Apply(t/bird.TurnWindow))

	tv := cs.tuning.TV
	frame.TV = tv.Start.Lerp(tv.End, tv.Slide.Progress(t))

	frame.PortalAlpha = make([]float32, len(cs.tuning.Portals.Positions))
	for i, p := range cs.tuning.Portals.Positions {
		frame.PortalAlpha[i] = cs.portalAlpha(frame.BirdPosition.Distance(p))
	}

	frame.Toggles = make([]bool, len(cs.tuning.Toggles))
	for i, th := range cs.tuning.Toggles {
		frame.Toggles[i] = th.On(t)
	}

	return frame

}

func (cs *CorridorSequencer) portalAlpha(distance float32) float32 {
	p := cs.tuning.Portals
	return math32.SmoothstepRange(p.AppearAt+p.Fade, p.AppearAt-p.Fade, distance)
}

// BirdPosition returns where the corridor bird is at t: a bobbing descent down the corridor, an arcing glide
// to its perch, then the perch itself.
func (cs *CorridorSequencer) BirdPosition(t float32) Vector3 {

	bird := cs.tuning.Bird
	sel := cs.birdTimeline.Select(t)
	p := cs.birdTimeline.Window(sel.Current).Progress(t)

	if sel.Current == 0 {
		pos := bird.Start.Lerp(bird.Mid, p)
		pos.Y += math32.Sin(p*math32.Pi*2) * bird.Bob
		return pos
	}

	if sel.Local >= 1 {
		return bird.Perch
	}

	pos := bird.Mid.Lerp(bird.Perch, p)
	pos.Y += math32.Sin(p*math32.Pi) * bird.Arc
	return pos

}

// CameraTarget returns the camera pose for t, and whether it should be written without smoothing.
func (cs *CorridorSequencer) CameraTarget(t float32) (CameraPose, bool) {

	sel := cs.timeline.Select(t)

	switch sel.Current {
	case cs.approach:
		return cs.approachPose(t), true
	case cs.widen:
		u := cs.timeline.Window(cs.widen).Progress(t)
		return cs.approachEnd.Lerp(cs.tuning.Camera.Wide, u), false
	default:
		return cs.pathPose(cs.timeline.Window(cs.path).Progress(t)), false
	}

}

// approachPose rigidly trails the bird; the offset and look-at blend from their corridor values
// to their perch values late in the approach.
func (cs *CorridorSequencer) approachPose(t float32) CameraPose {

	cam := cs.tuning.Camera
	bird := cs.BirdPosition(t)
	beta := math32.InverseLerp(cam.OffsetBlendStart, cs.timeline.Window(cs.approach).End, t)

	offset := cam.OffsetStart.Lerp(cam.OffsetEnd, beta)

	return CameraPose{
		Position: bird.Add(offset),
		Target:   cam.LookCorridor.Lerp(bird.Add(cam.LookBirdOffset), beta),
	}

}

// pathPose samples both curves at the shared arc parameter u. Early on it blends in from the wide shot,
// and late on it lifts the look-at height to the screen.
func (cs *CorridorSequencer) pathPose(u float32) CameraPose {

	cam := cs.tuning.Camera

	onPos := cs.pathCurve.PointAt(u)
	onLook := cs.lookCurve.PointAt(u)

	blend := math32.SmoothstepRange(0, cam.PathBlendEnd, u)

	pose := CameraPose{
		Position: cam.Wide.Position.Lerp(onPos, blend),
		Target:   cam.Wide.Target.Lerp(onLook, blend),
	}

	lookY := math32.Lerp(cam.Wide.Target.Y, cam.FlatLookY, blend)
	screen := math32.SmoothstepRange(cam.ScreenLookStart, 1, u)
	pose.Target.Y = math32.Lerp(lookY, cam.ScreenLook.Y, screen)

	return pose

}
