package flightpath

import (
	"math/rand"
	"testing"

	"github.com/solarlune/flightpath/math32"
)

func BenchmarkVectorDamp(b *testing.B) {

	b.StopTimer()

	maxSize := 1200

	vecs := make([]Vector3, 0, maxSize)

	for i := 0; i < maxSize; i++ {
		vecs = append(vecs, Vector3{X: rand.Float32(), Y: rand.Float32(), Z: rand.Float32()})
	}

	b.ReportAllocs()
	b.StartTimer()

	for z := 0; z < b.N; z++ {
		for i := 0; i < maxSize-1; i++ {
			vecs[i] = vecs[i].Damp(vecs[i+1], 3, 0.016)
		}
	}

}

func TestVectorCross(t *testing.T) {

	if got := WorldRight.Cross(WorldUp); !got.Equals(WorldBackward) {
		t.Errorf("right × up = %v, want %v", got, WorldBackward)
	}

}

func TestVectorUnit(t *testing.T) {

	if got := NewVector3(3, 0, 4).Unit(); !got.Equals(NewVector3(0.6, 0, 0.8)) {
		t.Errorf("Unit = %v", got)
	}

	if got := (Vector3{}).Unit(); !got.IsZero() {
		t.Errorf("the zero vector should stay zero, got %v", got)
	}

}

func TestVectorYaw(t *testing.T) {

	tests := []struct {
		dir  Vector3
		want float32
	}{
		{WorldBackward, 0},
		{WorldRight, math32.Pi / 2},
		{WorldForward, math32.Pi},
		{NewVector3(-1, 5, 0), -math32.Pi / 2},
	}

	for _, tt := range tests {
		if got := tt.dir.Yaw(); math32.Abs(math32.WrapAngle(got-tt.want)) > 1e-5 {
			t.Errorf("%v.Yaw() = %v, want %v", tt.dir, got, tt.want)
		}
	}

	// The yaw of a direction is the rotation that turns +Z to face it.
	dir := NewVector3(1, 0, -1).Unit()
	turned := NewMatrix4Rotate(0, 1, 0, dir.Yaw()).MultVec(WorldBackward)
	if !turned.EqualsApprox(dir, 1e-5) {
		t.Errorf("rotating +Z by the yaw gave %v, want %v", turned, dir)
	}

}

func TestVectorDampIsFrameRateIndependent(t *testing.T) {

	target := NewVector3(10, -4, 2)

	fine := Vector3{}
	for i := 0; i < 20; i++ {
		fine = fine.Damp(target, 3, 0.016)
	}

	coarse := Vector3{}.Damp(target, 3, 0.32)

	if !fine.EqualsApprox(coarse, 1e-4) {
		t.Errorf("20 steps gave %v, one step gave %v", fine, coarse)
	}

}

func TestVectorIsFinite(t *testing.T) {

	big := math32.MaxFloat32
	inf := big * 2

	if NewVector3(0, inf, 0).IsFinite() {
		t.Error("an infinite component should make the vector non-finite")
	}

	if !NewVector3(1, 2, 3).IsFinite() {
		t.Error("an ordinary vector should be finite")
	}

}
