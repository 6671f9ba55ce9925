package math32

import "testing"

func TestDampMatchesClosedForm(t *testing.T) {

	got := Damp(0, 10, 3, 1)
	if Abs(got-9.5021) > 1e-4 {
		t.Fatalf("Damp(0, 10, 3, 1) = %v, want ~9.5021", got)
	}

}

func TestDampIsFrameRateIndependent(t *testing.T) {

	fine := float32(0)
	for i := 0; i < 20; i++ {
		fine = Damp(fine, 10, 3, 0.016)
	}

	coarse := Damp(0, 10, 3, 0.32)

	if Abs(fine-coarse) > 1e-4 {
		t.Fatalf("20 steps of 16ms gave %v, one step of 320ms gave %v", fine, coarse)
	}

}

func TestDampFactorEdges(t *testing.T) {

	if f := DampFactor(3, 0); f != 0 {
		t.Errorf("DampFactor with dt=0 = %v, want 0", f)
	}
	if f := DampFactor(3, -1); f != 0 {
		t.Errorf("DampFactor with negative dt = %v, want 0", f)
	}
	if f := DampFactor(0, 1); f != 0 {
		t.Errorf("DampFactor with k=0 = %v, want 0", f)
	}
	if f := DampFactor(1000, 1); f < 0.9999 || f > 1 {
		t.Errorf("DampFactor with huge k = %v, want ~1", f)
	}

}

func TestSmoothstep(t *testing.T) {

	tests := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
		{0.25, 0.15625},
	}

	for _, tt := range tests {
		if got := Smoothstep(tt.in); Abs(got-tt.want) > 1e-6 {
			t.Errorf("Smoothstep(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// Falling edge, as used for proximity fades
	if got := SmoothstepRange(12, 8, 14); got != 0 {
		t.Errorf("SmoothstepRange past the far edge = %v, want 0", got)
	}
	if got := SmoothstepRange(12, 8, 6); got != 1 {
		t.Errorf("SmoothstepRange past the near edge = %v, want 1", got)
	}

}

func TestInverseLerp(t *testing.T) {

	if got := InverseLerp(6, 10, 8); got != 0.5 {
		t.Errorf("InverseLerp(6, 10, 8) = %v, want 0.5", got)
	}
	if got := InverseLerp(6, 10, 100); got != 1 {
		t.Errorf("InverseLerp clamps high, got %v", got)
	}
	if got := InverseLerp(6, 10, -100); got != 0 {
		t.Errorf("InverseLerp clamps low, got %v", got)
	}
	if got := InverseLerp(3, 3, 3); got != 1 {
		t.Errorf("InverseLerp on an empty range at its edge = %v, want 1", got)
	}

}

func TestLerpAngleTakesShortestArc(t *testing.T) {

	// From just below +Pi to just above -Pi should pass through Pi, not through 0.
	a := float32(Pi - 0.1)
	b := float32(-Pi + 0.1)
	mid := WrapAngle(LerpAngle(a, b, 0.5))

	if Abs(Abs(mid)-Pi) > 1e-4 {
		t.Fatalf("LerpAngle midpoint = %v, want ±Pi", mid)
	}

}
