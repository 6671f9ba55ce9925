package flightpath

import (
	"testing"
)

func newTestFollowCamera(t *testing.T) *FollowCamera {
	fc, err := NewFollowCamera(DefaultTuning().Follow)
	if err != nil {
		t.Fatal(err)
	}
	fc.Start(CameraPose{Position: Vector3{0, 2, 10}, Target: Vector3{0, 2, 0}}, Vector3{0, 2, -4})
	return fc
}

func TestFollowCameraWaitsForClimb(t *testing.T) {

	fc := newTestFollowCamera(t)
	start := fc.Pose()

	for _, phase := range []FlightPhase{FlightApproach, FlightOrient} {
		if pose := fc.Update(Vector3{0, 2, -4}, phase, 0.1); pose != start {
			t.Errorf("camera moved during %s: %v -> %v", phase, start, pose)
		}
	}

}

func TestFollowCameraBlendsOntoBird(t *testing.T) {

	fc := newTestFollowCamera(t)
	bird := Vector3{0, 5, -4}

	var pose CameraPose
	for i := 0; i < 4; i++ {
		pose = fc.Update(bird, FlightClimbAndAlign, 0.25)
	}

	if pose.Position.X != 0 || pose.Position.Z != 10 {
		t.Errorf("camera left its anchor: %v", pose.Position)
	}

	if !pose.Position.EqualsApprox(Vector3{0, 5.5, 10}, 1e-4) {
		t.Errorf("camera after the blend = %v, want {0, 5.5, 10}", pose.Position)
	}

	if !pose.Target.EqualsApprox(bird, 1e-4) {
		t.Errorf("look-at after the blend = %v, want the bird at %v", pose.Target, bird)
	}

	// Following: the camera rises toward the bird, but never overshoots it.
	bird.Y = 10
	pose = fc.Update(bird, FlightClimbAndAlign, 0.1)

	if pose.Position.Y <= 5.5 || pose.Position.Y >= 10.5 {
		t.Errorf("following camera height = %v, want between 5.5 and 10.5", pose.Position.Y)
	}

	if fc.Locked() {
		t.Error("camera locked before the bird rose far enough")
	}

}

func TestFollowCameraLocksAtHeight(t *testing.T) {

	fc := newTestFollowCamera(t)

	for i := 0; i < 4; i++ {
		fc.Update(Vector3{0, 5, -4}, FlightClimbAndAlign, 0.25)
	}

	// The bird started at Y 2, so the camera locks once it passes 2 + 15.
	lockAt := Vector3{0, 17, -4}
	before := fc.Update(lockAt, FlightClimbAndAlign, 0.1)

	if !fc.Locked() {
		t.Fatal("camera should lock once the bird passes its stop height")
	}

	var pose CameraPose
	for i := 0; i < 10; i++ {
		pose = fc.Update(Vector3{0, 30, -4}, FlightClimbAndAlign, 0.1)
	}

	if pose.Position != before.Position {
		t.Errorf("locked camera moved from %v to %v", before.Position, pose.Position)
	}

	if !pose.Target.EqualsApprox(lockAt, 1e-4) {
		t.Errorf("locked look-at = %v, want the lock point %v", pose.Target, lockAt)
	}

}

func TestFollowCameraLocksOnDeparture(t *testing.T) {

	fc := newTestFollowCamera(t)
	fc.Update(Vector3{0, 5, -4}, FlightClimbAndAlign, 0.25)
	fc.Update(Vector3{0, 6, -4}, FlightDepart, 0.1)

	if !fc.Locked() {
		t.Error("camera should lock when the departure starts")
	}

}
