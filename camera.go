package flightpath

import (
	"github.com/solarlune/flightpath/math32"
)

// CameraPose is where a camera sits and the point it looks at.
type CameraPose struct {
	Position Vector3 `yaml:"position"`
	Target   Vector3 `yaml:"target"`
}

// Lerp returns a CameraPose blended toward other by the percentage given.
func (pose CameraPose) Lerp(other CameraPose, percentage float32) CameraPose {
	return CameraPose{
		Position: pose.Position.Lerp(other.Position, percentage),
		Target:   pose.Target.Lerp(other.Target, percentage),
	}
}

// Damp returns a CameraPose moved toward other with exponential decay; position and look-at target each
// have their own strength.
func (pose CameraPose) Damp(other CameraPose, posK, lookK, dt float32) CameraPose {
	return CameraPose{
		Position: pose.Position.Damp(other.Position, posK, dt),
		Target:   pose.Target.Damp(other.Target, lookK, dt),
	}
}

// Direction returns the unit vector the pose looks along.
func (pose CameraPose) Direction() Vector3 {
	return pose.Target.Sub(pose.Position).Unit()
}

// EqualsApprox returns if both the position and target are within the tolerance given.
func (pose CameraPose) EqualsApprox(other CameraPose, tolerance float32) bool {
	return pose.Position.EqualsApprox(other.Position, tolerance) && pose.Target.EqualsApprox(other.Target, tolerance)
}

// Camera represents a camera (where you look from) in flightpath. It's an Actor, so the Stage can write to it,
// and it projects world positions to screen pixels for drawing.
type Camera struct {
	*Node
	target      Vector3
	width       int
	height      int
	near, far   float32 // The near and far clipping plane. Near defaults to 0.1, Far to 500.
	fieldOfView float32 // Vertical field of view in degrees

	updateProjectionMatrix bool
	cachedProjectionMatrix Matrix4
}

// NewCamera creates a new Camera with the specified width and height.
func NewCamera(w, h int) *Camera {
	camera := &Camera{
		Node:                   NewNode("Camera"),
		near:                   0.1,
		far:                    500,
		fieldOfView:            55,
		target:                 WorldForward,
		updateProjectionMatrix: true,
	}
	camera.Resize(w, h)
	return camera
}

// Resize resizes the Camera's view to the width and height given.
func (camera *Camera) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w != camera.width || h != camera.height {
		camera.width = w
		camera.height = h
		camera.updateProjectionMatrix = true
	}
}

// Size returns the width and height of the camera's view.
func (camera *Camera) Size() (w, h int) {
	return camera.width, camera.height
}

// AspectRatio returns the camera's view aspect ratio (width / height).
func (camera *Camera) AspectRatio() float32 {
	return float32(camera.width) / float32(camera.height)
}

// Pose returns the camera's position and look-at target.
func (camera *Camera) Pose() CameraPose {
	return CameraPose{Position: camera.Position(), Target: camera.target}
}

// SetPose moves the camera and points it at the pose's target.
func (camera *Camera) SetPose(pose CameraPose) {
	camera.SetPosition(pose.Position)
	camera.target = pose.Target
}

// LookAt points the camera at the target given without moving it.
func (camera *Camera) LookAt(target Vector3) {
	camera.target = target
}

// SetFieldOfView sets the vertical field of view in degrees for the camera's perspective projection.
func (camera *Camera) SetFieldOfView(fovY float32) {
	if camera.fieldOfView != fovY {
		camera.fieldOfView = fovY
		camera.updateProjectionMatrix = true
	}
}

// FieldOfView returns the vertical field of view in degrees.
func (camera *Camera) FieldOfView() float32 {
	return camera.fieldOfView
}

// Near returns the near clipping plane distance.
func (camera *Camera) Near() float32 {
	return camera.near
}

// Far returns the far clipping plane distance.
func (camera *Camera) Far() float32 {
	return camera.far
}

// SetClipPlanes sets the near and far clipping plane distances.
func (camera *Camera) SetClipPlanes(near, far float32) {
	camera.near = near
	camera.far = far
	camera.updateProjectionMatrix = true
}

// Rotation returns the camera's rotation matrix; its Forward() points away from the target, since cameras look down -Z.
func (camera *Camera) Rotation() Matrix4 {
	return NewLookAtMatrix(camera.Position(), camera.target, WorldUp)
}

// ViewMatrix returns the Camera's view matrix.
func (camera *Camera) ViewMatrix() Matrix4 {

	camPos := camera.Position().Invert()
	transform := NewMatrix4Translate(camPos.X, camPos.Y, camPos.Z)

	// We invert the rotation because the Camera is looking down -Z
	transform = transform.Mult(camera.Rotation().Transposed())

	return transform

}

// Projection returns the Camera's projection matrix.
func (camera *Camera) Projection() Matrix4 {

	if camera.updateProjectionMatrix {
		camera.cachedProjectionMatrix = NewProjectionPerspective(camera.fieldOfView, camera.near, camera.far, float32(camera.width), float32(camera.height))
		camera.updateProjectionMatrix = false
	}

	return camera.cachedProjectionMatrix

}

// WorldToScreenPixels transforms a 3D position in the world to a position onscreen, with X and Y representing the pixels.
// The Z coordinate indicates depth away from the camera in 3D world units. The boolean is false if the position is
// behind the camera or closer than the near plane, in which case it shouldn't be drawn.
func (camera *Camera) WorldToScreenPixels(vert Vector3) (Vector3, bool) {

	v := camera.Projection().MultVecW(camera.ViewMatrix().MultVec(vert))

	if v.W < camera.near {
		return Vector3{}, false
	}

	ndc := v.To3D()

	return Vector3{
		X: (ndc.X + 1) / 2 * float32(camera.width),
		Y: (1 - ndc.Y) / 2 * float32(camera.height),
		Z: v.W,
	}, true

}

// WorldUnitToScreenPixels returns roughly how many pixels one world unit covers at the given depth in front of the camera.
func (camera *Camera) WorldUnitToScreenPixels(depth float32) float32 {
	if depth <= 0 {
		return 0
	}
	return float32(camera.height) / 2 / (math32.Tan(camera.fieldOfView*math32.Pi/360) * depth)
}
