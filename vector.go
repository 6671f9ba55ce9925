package flightpath

import (
	"fmt"

	"github.com/solarlune/flightpath/math32"
)

// WorldRight represents a unit vector in the global direction of WorldRight on the right-handed OpenGL coordinate system (+X).
var WorldRight = Vector3{1, 0, 0}

// WorldUp represents a unit vector in the global direction of WorldUp on the right-handed OpenGL coordinate system (+Y).
var WorldUp = Vector3{0, 1, 0}

// WorldBackward represents a unit vector in the global direction of WorldBackward on the right-handed OpenGL coordinate system (+Z, towards the viewer).
var WorldBackward = Vector3{0, 0, 1}

// WorldForward represents a unit vector pointing away from the viewer (-Z).
var WorldForward = Vector3{0, 0, -1}

// Vector3 represents a 3D Vector, which can be used for positions, look-at targets, offsets, and Euler rotations.
// Any Vector3 functions that modify the calling Vector3 return copies of the modified Vector3, meaning you can do method-chaining easily.
// Vectors are most efficient when copied, so try not to store pointers to them.
type Vector3 struct {
	X float32 `yaml:"x"` // The X (1st) component of the Vector
	Y float32 `yaml:"y"` // The Y (2nd) component of the Vector
	Z float32 `yaml:"z"` // The Z (3rd) component of the Vector
}

// NewVector3 creates a new Vector3 with the specified x, y, and z components.
func NewVector3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// String returns a string representation of the Vector3, rounded to three places.
func (vec Vector3) String() string {
	return fmt.Sprintf("{%.3f, %.3f, %.3f}", vec.X, vec.Y, vec.Z)
}

// Add returns a copy of the calling vector, added together with the other Vector3 provided.
func (vec Vector3) Add(other Vector3) Vector3 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vector3, with the other Vector3 subtracted from it.
func (vec Vector3) Sub(other Vector3) Vector3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Scale scales a Vector3 by the given scalar.
func (vec Vector3) Scale(scalar float32) Vector3 {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Mult performs component-wise multiplication between the calling Vector3 and the other Vector3 provided.
func (vec Vector3) Mult(other Vector3) Vector3 {
	vec.X *= other.X
	vec.Y *= other.Y
	vec.Z *= other.Z
	return vec
}

// Invert returns a copy of the Vector3 with all components inverted.
func (vec Vector3) Invert() Vector3 {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Dot returns the dot product of a Vector3 and another Vector3.
func (vec Vector3) Dot(other Vector3) float32 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Cross returns a new Vector3, indicating the cross product of the calling Vector3 and the provided Other Vector3.
func (vec Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: vec.Y*other.Z - other.Y*vec.Z,
		Y: vec.Z*other.X - other.Z*vec.X,
		Z: vec.X*other.Y - other.X*vec.Y,
	}
}

// Magnitude returns the length of the Vector3.
func (vec Vector3) Magnitude() float32 {
	return math32.Sqrt(vec.MagnitudeSquared())
}

// MagnitudeSquared returns the squared length of the Vector3; this is faster than Magnitude() as it avoids using math32.Sqrt().
func (vec Vector3) MagnitudeSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z
}

// Distance returns the distance from the calling Vector3 to the other Vector3 provided.
func (vec Vector3) Distance(other Vector3) float32 {
	return vec.Sub(other).Magnitude()
}

// DistanceSquared returns the squared distance from the calling Vector3 to the other Vector3 provided.
func (vec Vector3) DistanceSquared(other Vector3) float32 {
	return vec.Sub(other).MagnitudeSquared()
}

// Unit returns a copy of the Vector3, normalized (set to be of unit length). A zero Vector3 is returned as-is.
func (vec Vector3) Unit() Vector3 {
	l := vec.Magnitude()
	if l < 1e-8 {
		return vec
	}
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// Lerp returns a copy of the Vector3 moved towards the other Vector3 by the percentage given (which isn't clamped).
func (vec Vector3) Lerp(other Vector3, percentage float32) Vector3 {
	vec.X += (other.X - vec.X) * percentage
	vec.Y += (other.Y - vec.Y) * percentage
	vec.Z += (other.Z - vec.Z) * percentage
	return vec
}

// Damp returns a copy of the Vector3 moved towards target with exponential decay of strength k over dt seconds.
// See math32.DampFactor.
func (vec Vector3) Damp(target Vector3, k, dt float32) Vector3 {
	return vec.Lerp(target, math32.DampFactor(k, dt))
}

// SetX sets the X component in the vector to the value provided.
func (vec Vector3) SetX(x float32) Vector3 {
	vec.X = x
	return vec
}

// SetY sets the Y component in the vector to the value provided.
func (vec Vector3) SetY(y float32) Vector3 {
	vec.Y = y
	return vec
}

// SetZ sets the Z component in the vector to the value provided.
func (vec Vector3) SetZ(z float32) Vector3 {
	vec.Z = z
	return vec
}

// Floats returns a [3]float32 array consisting of the Vector3's contents.
func (vec Vector3) Floats() [3]float32 {
	return [3]float32{vec.X, vec.Y, vec.Z}
}

// Equals returns true if the two Vectors are close enough in all values.
func (vec Vector3) Equals(other Vector3) bool {
	return vec.EqualsApprox(other, 1e-6)
}

// EqualsApprox returns true if every component of the two Vectors is within the tolerance given.
func (vec Vector3) EqualsApprox(other Vector3, tolerance float32) bool {
	return math32.Abs(vec.X-other.X) <= tolerance &&
		math32.Abs(vec.Y-other.Y) <= tolerance &&
		math32.Abs(vec.Z-other.Z) <= tolerance
}

// IsZero returns true if the values in the Vector3 are extremely close to 0.
func (vec Vector3) IsZero() bool {
	return vec.Equals(Vector3{})
}

// IsFinite returns true if no component of the Vector3 is NaN or infinite.
func (vec Vector3) IsFinite() bool {
	return math32.IsFinite(vec.X) && math32.IsFinite(vec.Y) && math32.IsFinite(vec.Z)
}

// Yaw returns the heading of the Vector3 around +Y in radians, measured so that +Z is 0 (the same convention as
// an object rotated around +Y by NewMatrix4Rotate). The Y component is ignored.
func (vec Vector3) Yaw() float32 {
	return math32.Atan2(vec.X, vec.Z)
}

// Vector4 represents a 4D Vector; flightpath uses it for homogeneous coordinates when projecting through a Matrix4.
type Vector4 struct {
	X float32 // The X (1st) component of the Vector
	Y float32 // The Y (2nd) component of the Vector
	Z float32 // The Z (3rd) component of the Vector
	W float32 // The w (4th) component of the Vector
}

// To3D returns the Vector4 as a Vector3, divided through by W (perspective divide). If W is 0, the XYZ components are returned unchanged.
func (vec Vector4) To3D() Vector3 {
	if vec.W == 0 {
		return Vector3{vec.X, vec.Y, vec.Z}
	}
	return Vector3{vec.X / vec.W, vec.Y / vec.W, vec.Z / vec.W}
}
