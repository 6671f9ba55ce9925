package flightpath

import (
	"errors"
	"fmt"
	"log"

	"github.com/solarlune/flightpath/math32"
)

// Scene is the part of the sequence the Stage is running.
type Scene int

const (
	SceneCorridor Scene = iota // The corridor and room, driven by the first scroll area
	SceneGarden                // The phrase garden, entered through the handoff
)

func (s Scene) String() string {
	switch s {
	case SceneCorridor:
		return "corridor"
	case SceneGarden:
		return "garden"
	}
	return fmt.Sprintf("Scene(%d)", int(s))
}

// CameraActor is an Actor that can be posed as a camera. *Camera satisfies it.
type CameraActor interface {
	Actor
	Pose() CameraPose
	SetPose(CameraPose)
}

// Actors is the set of objects a Stage moves. Any of them may be nil, and an Actor that isn't Ready is skipped
// for the frame; the Stage's own state keeps advancing either way.
type Actors struct {
	Camera       CameraActor
	CorridorBird Actor   // The bird that flies down the corridor in the first scene
	TV           Actor   // The screen that slides back into the room
	Portals      []Actor // In the same order as the tuning's portal positions
	WinBird      Actor   // The bird that flies once the game is won, and carries on into the garden
	Phrases      []Actor // In the same order as the tuning's phrases
	Logo         Actor
}

// StageOption configures a Stage in NewStage.
type StageOption func(stage *Stage)

// WithLogger has the Stage log phase changes and signal edges to logger.
func WithLogger(logger *log.Logger) StageOption {
	return func(stage *Stage) {
		stage.logger = logger
	}
}

// WithSignals sets the callbacks the Stage calls.
func WithSignals(signals Signals) StageOption {
	return func(stage *Stage) {
		stage.signals = signals
	}
}

// Stage runs the whole sequence: it reads the scroll signal, evaluates whichever scene is active, runs the win
// flight and the handoff between scenes, and writes the results to the Actors. Each frame the camera is written by
// exactly one of the corridor sequencer, the follow camera, the handoff, or the garden sequencer.
//
// A Stage isn't safe for concurrent use; call everything from the game loop.
type Stage struct {
	tuning  *Tuning
	actors  Actors
	signals Signals
	logger  *log.Logger

	scroll   *ScrollSignal
	corridor *CorridorSequencer
	garden   *GardenSequencer
	flight   *WinFlight
	follow   *FollowCamera
	handoff  *Handoff

	scene Scene
	phase string

	camera      CameraPose
	cameraReady bool

	corridorReady bool
	birdPitch     float32
	birdYaw       float32
	tv            Vector3
	portalAlpha   []float32
	toggles       []Edge

	won          bool
	proceeded    bool
	flightPhase  FlightPhase
	activePhrase int
	exited       bool

	background Color
}

// NewStage validates the tuning (DefaultTuning is used if it's nil) and returns a Stage at the start of the
// corridor.
func NewStage(tuning *Tuning, actors Actors, opts ...StageOption) (*Stage, error) {

	if tuning == nil {
		tuning = DefaultTuning()
	}

	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	stage := &Stage{
		tuning:       tuning,
		actors:       actors,
		activePhrase: -1,
	}

	for _, opt := range opts {
		opt(stage)
	}

	var err error

	if stage.corridor, err = NewCorridorSequencer(tuning.Corridor); err != nil {
		return nil, err
	}
	if stage.garden, err = NewGardenSequencer(tuning.Garden); err != nil {
		return nil, err
	}
	if stage.flight, err = NewWinFlight(tuning.Flight); err != nil {
		return nil, err
	}
	if stage.follow, err = NewFollowCamera(tuning.Follow); err != nil {
		return nil, err
	}
	if stage.handoff, err = NewHandoff(tuning.Handoff); err != nil {
		return nil, err
	}
	if stage.scroll, err = NewScrollSignal(tuning.Corridor.Scroll); err != nil {
		return nil, err
	}

	stage.portalAlpha = make([]float32, len(tuning.Corridor.Portals.Positions))
	stage.toggles = make([]Edge, len(tuning.Corridor.Toggles))
	stage.background = tuning.Corridor.Background

	return stage, nil

}

func (stage *Stage) logf(format string, args ...any) {
	if stage.logger != nil {
		stage.logger.Printf("[Stage] "+format, args...)
	}
}

// Tuning returns the Stage's tuning.
func (stage *Stage) Tuning() *Tuning {
	return stage.tuning
}

// SetTuning swaps in a new tuning, rebuilding the scene sequencers. A flight or handoff that has already started
// keeps running with the values it started with. If the tuning is invalid, nothing changes and the error is returned.
func (stage *Stage) SetTuning(tuning *Tuning) error {

	if tuning == nil {
		return errors.New("flightpath: nil tuning")
	}

	if err := tuning.Validate(); err != nil {
		return err
	}

	corridor, err := NewCorridorSequencer(tuning.Corridor)
	if err != nil {
		return err
	}
	garden, err := NewGardenSequencer(tuning.Garden)
	if err != nil {
		return err
	}

	if len(tuning.Corridor.Portals.Positions) != len(stage.portalAlpha) {
		stage.portalAlpha = make([]float32, len(tuning.Corridor.Portals.Positions))
	}
	if len(tuning.Corridor.Toggles) != len(stage.toggles) {
		stage.toggles = make([]Edge, len(tuning.Corridor.Toggles))
	}

	scrollTuning := tuning.Corridor.Scroll
	if stage.scene == SceneGarden {
		scrollTuning = tuning.Garden.Scroll
	}
	if err := stage.scroll.SetTuning(scrollTuning); err != nil {
		return err
	}

	if !stage.proceeded {
		if stage.flight, err = NewWinFlight(tuning.Flight); err != nil {
			return err
		}
		if stage.follow, err = NewFollowCamera(tuning.Follow); err != nil {
			return err
		}
	}

	if !stage.handoff.Triggered() {
		if stage.handoff, err = NewHandoff(tuning.Handoff); err != nil {
			return err
		}
	}

	stage.tuning = tuning
	stage.corridor = corridor
	stage.garden = garden

	stage.logf("tuning reloaded")

	return nil

}

// Scroll returns the scroll signal the Stage reads from; feed input into it.
func (stage *Stage) Scroll() *ScrollSignal {
	return stage.scroll
}

// Scene returns the active scene.
func (stage *Stage) Scene() Scene {
	return stage.scene
}

// Phase returns the name of the current corridor or garden window.
func (stage *Stage) Phase() string {
	return stage.phase
}

// Corridor returns the corridor sequencer.
func (stage *Stage) Corridor() *CorridorSequencer {
	return stage.corridor
}

// Garden returns the garden sequencer.
func (stage *Stage) Garden() *GardenSequencer {
	return stage.garden
}

// Flight returns the win flight.
func (stage *Stage) Flight() *WinFlight {
	return stage.flight
}

// Handoff returns the handoff between the scenes.
func (stage *Stage) Handoff() *Handoff {
	return stage.handoff
}

// CameraPose returns the camera pose written on the last update.
func (stage *Stage) CameraPose() CameraPose {
	return stage.camera
}

// Background returns the background colour for the current frame.
func (stage *Stage) Background() Color {
	return stage.background
}

// PortalAlpha returns the current opacity of the portal at index i.
func (stage *Stage) PortalAlpha(i int) float32 {
	if i < 0 || i >= len(stage.portalAlpha) {
		return 0
	}
	return stage.portalAlpha[i]
}

// Toggle returns the state of the named threshold toggle.
func (stage *Stage) Toggle(name string) bool {
	for i, th := range stage.tuning.Corridor.Toggles {
		if th.Name == name && i < len(stage.toggles) {
			return stage.toggles[i].State()
		}
	}
	return false
}

// Won returns if GameWon has been called.
func (stage *Stage) Won() bool {
	return stage.won
}

// Proceeded returns if the win flight has been started.
func (stage *Stage) Proceeded() bool {
	return stage.proceeded
}

// ActivePhrase returns the index of the active garden phrase, or -1 before the garden has been evaluated.
func (stage *Stage) ActivePhrase() int {
	return stage.activePhrase
}

// Exited returns if the exit signal has been sent.
func (stage *Stage) Exited() bool {
	return stage.exited
}

// GameWon records that the game was won, and puts the win bird at its start pose.
func (stage *Stage) GameWon() {

	if stage.won {
		return
	}

	stage.won = true
	stage.logf("game won")

	writeTransform(stage.actors.WinBird, func(tr *Transform) {
		tr.Position = stage.flight.Position()
		tr.Rotation = Vector3{Y: stage.flight.Yaw()}
		tr.Visible = true
	})

}

// Proceed starts the win flight. It returns false if the game hasn't been won, or if the flight already started.
func (stage *Stage) Proceed() bool {

	if !stage.won || stage.proceeded || stage.scene != SceneCorridor {
		return false
	}

	ft := stage.tuning.Flight
	if !stage.flight.Start(ft.Start, ft.StartYaw) {
		return false
	}

	stage.proceeded = true
	stage.follow.Start(stage.camera, stage.flight.Position())
	stage.logf("win flight started")

	return true

}

// Update advances the Stage by dt seconds, clamped to the tuning's MaxFrameDelta.
func (stage *Stage) Update(dt float32) {

	if !(dt > 0) {
		dt = 0
	}
	dt = math32.Min(dt, stage.tuning.MaxFrameDelta)

	stage.scroll.Update(dt)

	switch stage.scene {
	case SceneCorridor:
		stage.updateCorridor(dt)
		if stage.flight.Active() {
			stage.updateFlight(dt)
		}
	case SceneGarden:
		stage.updateGarden(dt)
	}

}

func (stage *Stage) setPhase(phase string) {
	if phase != stage.phase {
		stage.logf("%s: phase %q -> %q", stage.scene, stage.phase, phase)
		stage.phase = phase
	}
}

func (stage *Stage) updateCorridor(dt float32) {

	tuning := stage.tuning.Corridor
	frame := stage.corridor.Evaluate(stage.scroll.Progress())

	stage.setPhase(frame.Phase)

	for i, on := range frame.Toggles {
		if i >= len(stage.toggles) || !stage.toggles[i].Set(on) {
			continue
		}
		name := tuning.Toggles[i].Name
		stage.logf("toggle %q -> %t (t=%.3f)", name, on, frame.T)
		stage.signals.toggle(name, on)
		if on && i == stage.corridor.GameToggle() {
			stage.logf("game triggered")
			stage.signals.gameTrigger()
		}
	}

	// The follow camera owns the camera once the win flight starts.
	if !stage.proceeded {
		if frame.CameraSnap || !stage.cameraReady {
			stage.camera = frame.Camera
		} else {
			stage.camera = stage.camera.Damp(frame.Camera, tuning.Camera.FollowK, tuning.Camera.LookK, dt)
		}
		stage.cameraReady = true
		stage.writeCamera()
	}

	if !stage.corridorReady {
		stage.birdPitch = frame.BirdPitch
		stage.birdYaw = frame.BirdYaw
		stage.tv = frame.TV
		copy(stage.portalAlpha, frame.PortalAlpha)
		stage.corridorReady = true
	} else {
		stage.birdPitch = math32.Damp(stage.birdPitch, frame.BirdPitch, tuning.Bird.PitchK, dt)
		stage.birdYaw = math32.DampAngle(stage.birdYaw, frame.BirdYaw, tuning.Bird.YawK, dt)
		stage.tv = stage.tv.Damp(frame.TV, tuning.TV.K, dt)
		for i := range stage.portalAlpha {
			if i < len(frame.PortalAlpha) {
				stage.portalAlpha[i] = math32.Damp(stage.portalAlpha[i], frame.PortalAlpha[i], tuning.Portals.K, dt)
			}
		}
	}

	writeTransform(stage.actors.CorridorBird, func(tr *Transform) {
		tr.Position = frame.BirdPosition
		tr.Rotation = Vector3{X: stage.birdPitch, Y: stage.birdYaw}
	})

	writeTransform(stage.actors.TV, func(tr *Transform) {
		tr.Position = stage.tv
	})

	for i, portal := range stage.actors.Portals {
		if i >= len(stage.portalAlpha) {
			break
		}
		alpha := stage.portalAlpha[i]
		writeTransform(portal, func(tr *Transform) {
			tr.Position = tuning.Portals.Positions[i]
			tr.Alpha = alpha
			tr.Visible = alpha > tuning.Portals.VisibleAlpha
		})
	}

	stage.background = frame.Background

}

func (stage *Stage) updateFlight(dt float32) {

	handoffReady := stage.flight.Update(dt)
	position := stage.flight.Position()

	if phase := stage.flight.Phase(); phase != stage.flightPhase {
		stage.logf("win flight: %s -> %s", stage.flightPhase, phase)
		stage.flightPhase = phase
	}

	writeTransform(stage.actors.WinBird, func(tr *Transform) {
		tr.Position = position
		tr.Rotation = Vector3{Y: stage.flight.Yaw()}
		tr.Visible = true
	})

	stage.camera = stage.follow.Update(position, stage.flight.Phase(), dt)
	stage.writeCamera()

	if handoffReady {
		stage.logf("handoff ready at %s", position)
		stage.signals.handoffReady(position)
		stage.beginHandoff(position)
	}

}

func (stage *Stage) beginHandoff(from Vector3) {

	if !stage.handoff.Trigger(from) {
		return
	}

	garden := stage.tuning.Garden

	stage.scene = SceneGarden
	stage.phase = ""
	if err := stage.scroll.SetTuning(garden.Scroll); err != nil {
		stage.logf("keeping corridor scroll tuning: %v", err)
	}
	stage.scroll.Reset(garden.Gate, garden.GateFrames)
	stage.scroll.SetEnabled(false)

	stage.logf("switched to %s", stage.scene)

}

func (stage *Stage) updateGarden(dt float32) {

	if stage.handoff.Active() {

		position, done := stage.handoff.Update(dt)

		writeTransform(stage.actors.WinBird, func(tr *Transform) {
			tr.Position = position
			tr.Visible = true
		})

		stage.camera = stage.handoff.CameraPose()
		stage.writeCamera()

		if done {
			stage.scroll.SetEnabled(true)
			stage.logf("handoff finished")
		}

		return

	}

	tuning := stage.tuning.Garden
	frame := stage.garden.Evaluate(stage.scroll.Offset())

	stage.setPhase(frame.Phase)

	if frame.ActiveIndex != stage.activePhrase {
		stage.activePhrase = frame.ActiveIndex
		text := tuning.Phrases[frame.ActiveIndex]
		stage.logf("active phrase #%d: %q", frame.ActiveIndex, text)
		stage.signals.activePhrase(frame.ActiveIndex, text)
	}

	writeTransform(stage.actors.WinBird, func(tr *Transform) {
		tr.Position = frame.Bird
		tr.Rotation = Vector3{Y: frame.BirdYaw}
		tr.Visible = true
	})

	for i, phrase := range stage.actors.Phrases {
		if i >= len(frame.Phrases) {
			break
		}
		writeTransform(phrase, func(tr *Transform) {
			tr.Position = frame.Phrases[i]
			tr.Visible = true
		})
	}

	writeTransform(stage.actors.Logo, func(tr *Transform) {
		tr.Position = frame.Logo
		tr.Visible = true
	})

	stage.camera = CameraPose{
		Position: stage.camera.Position.Damp(frame.Camera.Position, tuning.CameraK, dt),
		Target:   frame.Camera.Target,
	}
	stage.writeCamera()

	stage.background = frame.Background

	if frame.ExitReached && stage.scroll.UserScrolled() && !stage.exited {
		stage.exited = true
		stage.logf("exit reached")
		stage.signals.exit()
	}

}

func (stage *Stage) writeCamera() {
	if cam := stage.actors.Camera; cam != nil && cam.Ready() {
		cam.SetPose(stage.camera)
	}
}

// writeTransform hands a copy of actor's Transform to fn and writes it back. Nil and unready actors are skipped.
func writeTransform(actor Actor, fn func(tr *Transform)) {
	if actor == nil || !actor.Ready() {
		return
	}
	tr := actor.Transform()
	fn(&tr)
	actor.SetTransform(tr)
}
