package flightpath

import (
	"testing"

	"github.com/solarlune/flightpath/math32"
)

func TestCameraWorldToScreenPixels(t *testing.T) {

	camera := NewCamera(200, 100)
	camera.SetPose(CameraPose{Position: Vector3{0, 0, 10}, Target: Vector3{}})

	center, ok := camera.WorldToScreenPixels(Vector3{})
	if !ok {
		t.Fatal("origin should be in front of the camera")
	}

	if math32.Abs(center.X-100) > 1e-3 || math32.Abs(center.Y-50) > 1e-3 {
		t.Errorf("origin projected to %v, want the middle of the view", center)
	}

	if math32.Abs(center.Z-10) > 1e-3 {
		t.Errorf("depth = %v, want 10", center.Z)
	}

	up, _ := camera.WorldToScreenPixels(Vector3{0, 1, 0})
	if up.Y >= center.Y {
		t.Errorf("a point above the origin projected below it: %v", up)
	}

	right, _ := camera.WorldToScreenPixels(Vector3{1, 0, 0})
	if right.X <= center.X {
		t.Errorf("a point right of the origin projected left of it: %v", right)
	}

	if _, ok := camera.WorldToScreenPixels(Vector3{0, 0, 20}); ok {
		t.Error("a point behind the camera shouldn't be drawable")
	}

}

func TestCameraPoseDamp(t *testing.T) {

	from := CameraPose{Position: Vector3{0, 0, 0}, Target: Vector3{0, 0, -1}}
	to := CameraPose{Position: Vector3{10, 0, 0}, Target: Vector3{0, 0, -11}}

	got := from.Damp(to, 3, 3, 1)

	if math32.Abs(got.Position.X-9.5021) > 1e-3 || math32.Abs(got.Target.Z+10.5021) > 1e-3 {
		t.Fatalf("Damp gave %+v", got)
	}

}
