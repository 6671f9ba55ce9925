package flightpath

import (
	"errors"
	"testing"

	"github.com/solarlune/flightpath/math32"
)

func newTestFlight(t testing.TB) *WinFlight {
	f, err := NewWinFlight(DefaultTuning().Flight)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestWinFlightRunsPhasesInOrder(t *testing.T) {

	f := newTestFlight(t)
	tuning := DefaultTuning().Flight

	if f.Update(1.0 / 60) {
		t.Fatal("an idle flight shouldn't report a handoff")
	}

	if !f.Start(tuning.Start, tuning.StartYaw) {
		t.Fatal("Start failed")
	}

	if f.Start(Vector3{}, 0) {
		t.Error("a second Start should do nothing")
	}

	seen := []FlightPhase{f.Phase()}
	handoffs := 0

	for i := 0; i < 10000 && !f.Done(); i++ {

		if f.Update(1.0 / 60) {
			handoffs++
		}

		if p := f.Phase(); p != seen[len(seen)-1] {
			if p < seen[len(seen)-1] {
				t.Fatalf("phase went backwards: %s -> %s", seen[len(seen)-1], p)
			}
			seen = append(seen, p)
		}

	}

	want := []FlightPhase{FlightApproach, FlightOrient, FlightClimbAndAlign, FlightDepart, FlightDone}

	if len(seen) != len(want) {
		t.Fatalf("phases = %v, want %v", seen, want)
	}

	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("phases = %v, want %v", seen, want)
		}
	}

	if handoffs != 1 {
		t.Fatalf("handoff reported %d times, want 1", handoffs)
	}

	end := f.Position()
	for i := 0; i < 100; i++ {
		if f.Update(1.0 / 60) {
			t.Fatal("handoff reported again after the flight finished")
		}
	}

	if f.Position() != end {
		t.Errorf("finished flight moved from %v to %v", end, f.Position())
	}

}

func TestWinFlightPhaseEndStates(t *testing.T) {

	f := newTestFlight(t)
	tuning := DefaultTuning().Flight
	f.Start(tuning.Start, tuning.StartYaw)

	step := func(until FlightPhase) {
		for i := 0; i < 10000 && f.Phase() < until; i++ {
			f.Update(1.0 / 60)
		}
	}

	step(FlightOrient)

	center := Vector3{tuning.Center.X, tuning.Start.Y, tuning.Center.Z}
	if f.Position() != center {
		t.Errorf("approach ended at %v, want %v", f.Position(), center)
	}

	step(FlightClimbAndAlign)

	if diff := math32.WrapAngle(f.Yaw() - tuning.ViewerDir.Yaw()); math32.Abs(diff) > 1e-3 {
		t.Errorf("orient ended facing %v, want %v", f.Yaw(), tuning.ViewerDir.Yaw())
	}

	if f.Position() != center {
		t.Errorf("bird moved while turning: %v", f.Position())
	}

	for i := 0; i < 10000 && !f.Aligning(); i++ {
		f.Update(1.0 / 60)
	}

	if got := f.Position(); got != center.Add(Vector3{Y: tuning.Climb}) {
		t.Errorf("climb ended at %v, want %v", got, center.Add(Vector3{Y: tuning.Climb}))
	}

	step(FlightDone)

	if f.Position().Y <= center.Y+tuning.Climb {
		t.Errorf("departure should rise above the climb, ended at %v", f.Position())
	}

}

// climbHeights runs a flight to the end of its climb at the given frame rate, recording the bird's height against
// the time spent climbing.
func climbHeights(t *testing.T, fps float32) (times, heights []float32) {

	f := newTestFlight(t)
	tuning := DefaultTuning().Flight
	f.Start(tuning.Start, tuning.StartYaw)

	for i := 0; i < 10000 && f.Phase() < FlightClimbAndAlign; i++ {
		f.Update(1 / fps)
	}

	elapsed := float32(0)
	for i := 0; i < 10000 && !f.Aligning(); i++ {
		f.Update(1 / fps)
		elapsed += 1 / fps
		times = append(times, elapsed)
		heights = append(heights, f.Position().Y)
	}

	return times, heights

}

func TestWinFlightClimbFollowsSmoothstep(t *testing.T) {

	tuning := DefaultTuning().Flight
	startY := tuning.Start.Y

	for _, fps := range []float32{20, 60, 144} {

		times, heights := climbHeights(t, fps)

		for i := 0; i < len(times)-1; i++ {
			want := startY + tuning.Climb*math32.Smoothstep(times[i]/tuning.ClimbDuration)
			if math32.Abs(heights[i]-want) > 1e-3 {
				t.Fatalf("at %v fps, %vs into the climb the bird is at %v, want %v", fps, times[i], heights[i], want)
			}
		}

		if end := heights[len(heights)-1]; end != startY+tuning.Climb {
			t.Errorf("at %v fps the climb ended at %v, want %v", fps, end, startY+tuning.Climb)
		}

	}

}

func TestWinFlightDepartEndsOnExitPose(t *testing.T) {

	f := newTestFlight(t)
	tuning := DefaultTuning().Flight
	f.Start(tuning.Start, tuning.StartYaw)

	for i := 0; i < 10000 && f.Phase() < FlightDepart; i++ {
		f.Update(1.0 / 60)
	}

	departStart := f.Position()

	for i := 0; i < 10000 && !f.Done(); i++ {
		f.Update(1.0 / 60)
	}

	// The drift covered part of the leg already, so the exit is measured from the climb's end.
	climbEnd := Vector3{tuning.Center.X, tuning.Start.Y + tuning.Climb, tuning.Center.Z}
	want := climbEnd.Add(Vector3{Y: tuning.DepartUp, Z: tuning.DepartZ})

	if !f.Position().EqualsApprox(want, 1e-5) {
		t.Errorf("departure from %v ended at %v, want %v", departStart, f.Position(), want)
	}

}

func TestWinFlightNeverSkipsPhases(t *testing.T) {

	f := newTestFlight(t)
	tuning := DefaultTuning().Flight
	f.Start(tuning.Start, tuning.StartYaw)

	// Even with enormous frames, each update finishes at most one phase (or half of ClimbAndAlign).
	calls := 0
	handoff := false

	for !f.Done() && calls < 20 {
		handoff = f.Update(10)
		calls++
	}

	if calls != 5 {
		t.Errorf("took %d updates to finish, want 5", calls)
	}

	if !handoff {
		t.Error("the update that finished the flight should report the handoff")
	}

}

func TestWinFlightConfigErrors(t *testing.T) {

	tuning := DefaultTuning().Flight
	tuning.CenterDuration = 0

	_, err := NewWinFlight(tuning)
	if !errors.Is(err, ErrNonPositiveDuration) {
		t.Fatalf("got %v, want ErrNonPositiveDuration", err)
	}

	var cfg *ConfigError
	if !errors.As(err, &cfg) || cfg.Field != "flight.centerDuration" {
		t.Errorf("got %v, want a *ConfigError for flight.centerDuration", err)
	}

	tuning = DefaultTuning().Flight
	tuning.DepartK = -1

	if _, err := NewWinFlight(tuning); !errors.Is(err, ErrNonPositiveRate) {
		t.Errorf("got %v, want ErrNonPositiveRate", err)
	}

}
