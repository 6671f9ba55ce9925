package flightpath

import (
	"errors"
	"reflect"
	"testing"

	"github.com/solarlune/flightpath/math32"
)

func newTestCorridor(t testing.TB) *CorridorSequencer {
	cs, err := NewCorridorSequencer(DefaultTuning().Corridor)
	if err != nil {
		t.Fatal(err)
	}
	return cs
}

func BenchmarkCorridorEvaluate(b *testing.B) {

	cs := newTestCorridor(b)

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		cs.Evaluate(float32(i%1000) / 100)
	}

}

func TestCorridorCameraIsContinuousAtBoundaries(t *testing.T) {

	cs := newTestCorridor(t)

	const eps = 1e-3

	for _, boundary := range []float32{2, 4, 6, 10} {

		before, _ := cs.CameraTarget(boundary - eps)
		after, _ := cs.CameraTarget(boundary + eps)

		if !before.EqualsApprox(after, 0.05) {
			t.Errorf("camera jumps at t=%v: %v / %v -> %v / %v", boundary, before.Position, before.Target, after.Position, after.Target)
		}

	}

}

func TestCorridorApproachSnapsCamera(t *testing.T) {

	cs := newTestCorridor(t)

	pose, snap := cs.CameraTarget(0)
	if !snap {
		t.Error("camera should be written directly during the approach")
	}

	want := CameraPose{Position: Vector3{0, 5.3, 101}, Target: Vector3{0, 2, 10}}
	if !pose.EqualsApprox(want, 1e-4) {
		t.Errorf("camera at t=0 = %v -> %v, want %v -> %v", pose.Position, pose.Target, want.Position, want.Target)
	}

	for _, tt := range []float32{5, 8, 10} {
		if _, snap := cs.CameraTarget(tt); snap {
			t.Errorf("camera at t=%v should be smoothed, not snapped", tt)
		}
	}

}

func TestCorridorWidenEndsOnWideShot(t *testing.T) {

	cs := newTestCorridor(t)
	wide := cs.Tuning().Camera.Wide

	pose, _ := cs.CameraTarget(6)
	if !pose.EqualsApprox(wide, 1e-4) {
		t.Errorf("camera at the start of the path = %v -> %v, want the wide shot %v -> %v", pose.Position, pose.Target, wide.Position, wide.Target)
	}

}

func TestCorridorPathEndsOnScreen(t *testing.T) {

	cs := newTestCorridor(t)

	pose, _ := cs.CameraTarget(10)

	if !pose.Position.EqualsApprox(Vector3{0, 3.1, 1}, 1e-3) {
		t.Errorf("camera position at the end of the path = %v, want {0, 3.1, 1}", pose.Position)
	}

	if math32.Abs(pose.Target.Y-3.2) > 1e-4 {
		t.Errorf("look-at height at the end of the path = %v, want 3.2", pose.Target.Y)
	}

}

func TestCorridorPathWaypoints(t *testing.T) {

	cs := newTestCorridor(t)

	waypoints := cs.PathWaypoints()

	if got, want := waypoints.HopCount(), len(cs.PathCurve().ControlPoints())-1; got != want {
		t.Errorf("HopCount() = %d, want %d", got, want)
	}

	points := waypoints.Points()
	if !points[0].EqualsApprox(cs.PathCurve().PointAt(0), 1e-4) || !points[len(points)-1].EqualsApprox(cs.PathCurve().PointAt(1), 1e-4) {
		t.Errorf("waypoints run %v to %v, want the ends of the path curve", points[0], points[len(points)-1])
	}

	// The curve passes through every control point, so its polygon can't be longer than it.
	if waypoints.Length() > cs.PathCurve().Length()*1.01 {
		t.Errorf("control polygon length %v is longer than the curve's %v", waypoints.Length(), cs.PathCurve().Length())
	}

}

func TestCorridorBirdPosition(t *testing.T) {

	cs := newTestCorridor(t)

	tests := []struct {
		t    float32
		want Vector3
	}{
		{0, Vector3{0, 5, 100}},
		{0.5, Vector3{0, 5.2, 78.5}},
		{2, Vector3{0, 5, 14}},
		{3, Vector3{0.3, 4.5, 11.1}},
		{4, Vector3{0.6, 1, 8.2}},
		{7, Vector3{0.6, 1, 8.2}},
	}

	for _, tt := range tests {
		if got := cs.BirdPosition(tt.t); !got.EqualsApprox(tt.want, 1e-4) {
			t.Errorf("BirdPosition(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}

}

func TestCorridorBirdRotationTargets(t *testing.T) {

	cs := newTestCorridor(t)

	if f := cs.Evaluate(3); f.BirdPitch != -0.5 {
		t.Errorf("pitch during the glide = %v, want -0.5", f.BirdPitch)
	}

	if f := cs.Evaluate(5); f.BirdPitch != 0 {
		t.Errorf("pitch after the glide = %v, want 0", f.BirdPitch)
	}

	if f := cs.Evaluate(0); f.BirdYaw != 0 {
		t.Errorf("yaw at t=0 = %v, want 0", f.BirdYaw)
	}

	if f := cs.Evaluate(3); math32.Abs(f.BirdYaw-math32.Pi) > 1e-5 {
		t.Errorf("yaw after the turn = %v, want Pi", f.BirdYaw)
	}

}

func TestCorridorPortalFade(t *testing.T) {

	cs := newTestCorridor(t)

	// At t=0 the bird is exactly AppearAt away from the first portal, and far from the rest.
	frame := cs.Evaluate(0)

	if len(frame.PortalAlpha) != 3 {
		t.Fatalf("got %d portal alphas, want 3", len(frame.PortalAlpha))
	}

	if math32.Abs(frame.PortalAlpha[0]-0.5) > 1e-5 {
		t.Errorf("first portal alpha = %v, want 0.5", frame.PortalAlpha[0])
	}

	if frame.PortalAlpha[1] != 0 || frame.PortalAlpha[2] != 0 {
		t.Errorf("far portals should be hidden, got %v", frame.PortalAlpha[1:])
	}

}

func TestCorridorToggles(t *testing.T) {

	cs := newTestCorridor(t)

	index := func(name string) int {
		for i, th := range cs.Tuning().Toggles {
			if th.Name == name {
				return i
			}
		}
		t.Fatalf("no toggle named %q", name)
		return -1
	}

	tests := []struct {
		name string
		t    float32
		want bool
	}{
		{"laptopsMain", 2, false},
		{"laptopsMain", 2.01, true},
		{"laptops", 6, false},
		{"laptops", 6.5, true},
		{"tvSlots", 9.89, false},
		{"tvSlots", 9.9, true},
	}

	for _, tt := range tests {
		if got := cs.Evaluate(tt.t).Toggles[index(tt.name)]; got != tt.want {
			t.Errorf("%s at t=%v = %t, want %t", tt.name, tt.t, got, tt.want)
		}
	}

	if cs.GameToggle() != index("tvSlots") {
		t.Errorf("game toggle = %d, want tvSlots", cs.GameToggle())
	}

}

func TestCorridorEvaluateIsPure(t *testing.T) {

	cs := newTestCorridor(t)

	for _, tt := range []float32{-1, 0, 3.3, 5.5, 7.3, 9.95, 12} {
		a := cs.Evaluate(tt)
		cs.Evaluate(tt * 0.5)
		b := cs.Evaluate(tt)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Evaluate(%v) changed between calls", tt)
		}
	}

	if f := cs.Evaluate(math32.Sqrt(-1)); f.T != 0 {
		t.Errorf("NaN progress should evaluate as 0, got %v", f.T)
	}

}

func TestCorridorConfigErrors(t *testing.T) {

	tests := []struct {
		name   string
		modify func(ct *CorridorTuning)
		field  string
		want   error
	}{
		{
			name:   "pages",
			modify: func(ct *CorridorTuning) { ct.Scroll.Pages = 0 },
			field:  "corridor.scroll.pages",
			want:   ErrInvalidPages,
		},
		{
			name: "window order",
			modify: func(ct *CorridorTuning) {
				ct.Windows[0], ct.Windows[1] = ct.Windows[1], ct.Windows[0]
			},
			want: ErrUnorderedWindows,
		},
		{
			name:   "look curve",
			modify: func(ct *CorridorTuning) { ct.Camera.LookCurve.Waypoints = ct.Camera.LookCurve.Waypoints[:1] },
			field:  "corridor.camera.lookCurve",
			want:   ErrTooFewWaypoints,
		},
		{
			name:   "turn window",
			modify: func(ct *CorridorTuning) { ct.Bird.TurnWindow = 0 },
			field:  "corridor.bird.turnWindow",
			want:   ErrNonPositiveDuration,
		},
		{
			name:   "game toggle",
			modify: func(ct *CorridorTuning) { ct.GameToggle = "missing" },
			field:  "corridor.gameToggle",
			want:   ErrEmptyWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			ct := DefaultTuning().Corridor
			tt.modify(&ct)

			_, err := NewCorridorSequencer(ct)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}

			var cfg *ConfigError
			if !errors.As(err, &cfg) {
				t.Fatalf("%v isn't a *ConfigError", err)
			}

			if tt.field != "" && cfg.Field != tt.field {
				t.Errorf("field = %q, want %q", cfg.Field, tt.field)
			}

		})
	}

}
