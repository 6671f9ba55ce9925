package flightpath

import (
	"testing"

	"github.com/solarlune/flightpath/math32"
)

func BenchmarkMatrixProject(b *testing.B) {

	b.ReportAllocs()

	view := NewMatrix4Rotate(0, 1, 0.2, 0.24).Mult(NewMatrix4Translate(1, 4, -12))
	projection := NewProjectionPerspective(60, 0.1, 100, 960, 540)

	for i := 0; i < b.N; i++ {
		projection.MultVecW(view.MultVec(Vector3{1, 2, 3}))
	}

}

func TestMatrixTransposeUndoesRotation(t *testing.T) {

	rotations := []Matrix4{
		NewMatrix4Rotate(0, 1, 0, 0.1),
		NewMatrix4Rotate(1, 0, 0.1, 0.334),
		NewMatrix4RotateEuler(Vector3{0.3, -1.2, 0.05}),
		NewLookAtMatrix(Vector3{0, 2, 9}, Vector3{1, 0.5, 3}, WorldUp),
	}

	points := []Vector3{{1, 0, 0}, {0, 2, -3}, {-4, 0.5, 7}}

	for i, rot := range rotations {
		back := rot.Mult(rot.Transposed())
		for _, p := range points {
			if got := back.MultVec(p); !got.EqualsApprox(p, 1e-4) {
				t.Errorf("rotation #%d: %v came back as %v", i, p, got)
			}
		}
	}

}

func TestProjectionKeepsDepthInW(t *testing.T) {

	projection := NewProjectionPerspective(60, 0.1, 100, 960, 540)

	// Cameras look down -Z, so a point 5 units ahead has W = 5 and lands in the middle of the screen.
	v := projection.MultVecW(Vector3{0, 0, -5})

	if math32.Abs(v.W-5) > 1e-5 {
		t.Errorf("W = %v, want 5", v.W)
	}

	if math32.Abs(v.X) > 1e-5 || math32.Abs(v.Y) > 1e-5 {
		t.Errorf("centered point projected to %v", v)
	}

}

func TestMatrixRotateMatchesYaw(t *testing.T) {

	for _, angle := range []float32{0, 0.5, math32.Pi / 2, math32.Pi, -2.2} {
		forward := NewMatrix4Rotate(0, 1, 0, angle).Forward()
		if math32.Abs(math32.WrapAngle(forward.Yaw()-angle)) > 1e-4 {
			t.Errorf("yaw of rotated +Z = %v, want %v", forward.Yaw(), angle)
		}
	}

}

func TestMatrixTranslateThenRotate(t *testing.T) {

	// Row vectors: a.Mult(b) applies a first.
	mat := NewMatrix4Translate(1, 0, 0).Mult(NewMatrix4Rotate(0, 1, 0, math32.Pi/2))

	got := mat.MultVec(Vector3{})
	want := Vector3{0, 0, -1}

	if !got.EqualsApprox(want, 1e-5) {
		t.Fatalf("got %v, want %v", got, want)
	}

}

func TestLookAtMatrix(t *testing.T) {

	from := Vector3{0, 2, 9}
	to := Vector3{0, 2, 0}

	mat := NewLookAtMatrix(from, to, WorldUp)

	// Forward() points back at the eye, so the view direction is its inverse.
	if !mat.Forward().Invert().EqualsApprox(WorldForward, 1e-5) {
		t.Errorf("look direction = %v, want %v", mat.Forward().Invert(), WorldForward)
	}

	if !mat.Up().EqualsApprox(WorldUp, 1e-5) {
		t.Errorf("up = %v, want %v", mat.Up(), WorldUp)
	}

	// Looking straight down shouldn't produce NaNs.
	down := NewLookAtMatrix(Vector3{0, 5, 0}, Vector3{}, WorldUp)
	if !down.Right().IsFinite() || !down.Up().IsFinite() {
		t.Errorf("degenerate look-at produced %v", down)
	}

}
