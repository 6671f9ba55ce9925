package flightpath

import (
	"errors"
	"testing"
)

func TestHandoffIsOneShot(t *testing.T) {

	h, err := NewHandoff(DefaultTuning().Handoff)
	if err != nil {
		t.Fatal(err)
	}

	if pos, done := h.Update(0.1); done || pos != (Vector3{}) {
		t.Fatalf("untriggered handoff returned %v, %t", pos, done)
	}

	from := Vector3{0, 19, -9}

	if !h.Trigger(from) {
		t.Fatal("first Trigger failed")
	}

	if h.Trigger(Vector3{100, 100, 100}) {
		t.Error("second Trigger should be a no-op")
	}

	if h.From() != from {
		t.Errorf("From = %v after re-triggering, want %v", h.From(), from)
	}

}

func TestHandoffTweensLinearly(t *testing.T) {

	tuning := DefaultTuning().Handoff

	h, err := NewHandoff(tuning)
	if err != nil {
		t.Fatal(err)
	}

	from := Vector3{0, 19, -9}
	h.Trigger(from)

	pos, done := h.Update(tuning.Duration / 2)
	if done {
		t.Fatal("handoff finished halfway through")
	}

	if want := from.Lerp(tuning.To, 0.5); !pos.EqualsApprox(want, 1e-4) {
		t.Errorf("halfway position = %v, want %v", pos, want)
	}

	if cam := h.CameraPose(); cam.Target != pos || cam.Position != tuning.To.Add(tuning.CameraOffset) {
		t.Errorf("camera during the handoff = %v -> %v", cam.Position, cam.Target)
	}

	pos, done = h.Update(tuning.Duration)
	if !done || pos != tuning.To {
		t.Fatalf("after the full duration got %v, %t; want %v, true", pos, done, tuning.To)
	}

	if pos, done = h.Update(1); !done || pos != tuning.To {
		t.Errorf("finished handoff returned %v, %t", pos, done)
	}

	if h.Active() || !h.Done() {
		t.Error("finished handoff should be done and inactive")
	}

}

func TestHandoffRejectsZeroDuration(t *testing.T) {

	tuning := DefaultTuning().Handoff
	tuning.Duration = 0

	if _, err := NewHandoff(tuning); !errors.Is(err, ErrNonPositiveDuration) {
		t.Errorf("got %v, want ErrNonPositiveDuration", err)
	}

}
