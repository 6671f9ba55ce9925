package flightpath

import (
	"github.com/solarlune/flightpath/math32"
)

// Matrix4 represents a 4x4 matrix for translation, scale, and rotation. A Matrix4 in flightpath is row-major (i.e. the X axis is matrix[0]),
// and vectors are multiplied as rows (v * M), so translation lives in matrix[3].
type Matrix4 [4][4]float32

// NewMatrix4 returns a new identity Matrix4.
func NewMatrix4() Matrix4 {

	mat := Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	return mat

}

// NewMatrix4Translate returns a translation by x, y, z.
func NewMatrix4Translate(x, y, z float32) Matrix4 {
	mat := NewMatrix4()
	mat[3][0] = x
	mat[3][1] = y
	mat[3][2] = z
	return mat
}

// NewMatrix4Scale returns a scale by x, y, z.
func NewMatrix4Scale(x, y, z float32) Matrix4 {
	mat := NewMatrix4()
	mat[0][0] = x
	mat[1][1] = y
	mat[2][2] = z
	return mat
}

// NewMatrix4Rotate returns a rotation of angle radians, counter-clockwise around the axis x, y, z. Rotating around +Y
// carries +Z to {sin(angle), 0, cos(angle)}, matching Vector3.Yaw().
func NewMatrix4Rotate(x, y, z, angle float32) Matrix4 {

	// No axis; use +Y
	if x == 0 && y == 0 && z == 0 {
		y = 1
	}

	mat := NewMatrix4()
	vector := Vector3{X: x, Y: y, Z: z}.Unit()
	s := math32.Sin(angle)
	c := math32.Cos(angle)
	m := 1 - c

	mat[0][0] = m*vector.X*vector.X + c
	mat[0][1] = m*vector.X*vector.Y + vector.Z*s
	mat[0][2] = m*vector.Z*vector.X - vector.Y*s

	mat[1][0] = m*vector.X*vector.Y - vector.Z*s
	mat[1][1] = m*vector.Y*vector.Y + c
	mat[1][2] = m*vector.Y*vector.Z + vector.X*s

	mat[2][0] = m*vector.Z*vector.X + vector.Y*s
	mat[2][1] = m*vector.Y*vector.Z - vector.X*s
	mat[2][2] = m*vector.Z*vector.Z + c

	return mat

}

// NewMatrix4RotateEuler returns a rotation Matrix4 from Euler angles in radians, applied Z first, then Y, then X.
func NewMatrix4RotateEuler(euler Vector3) Matrix4 {
	return NewMatrix4Rotate(0, 0, 1, euler.Z).
		Mult(NewMatrix4Rotate(0, 1, 0, euler.Y)).
		Mult(NewMatrix4Rotate(1, 0, 0, euler.X))
}

// NewLookAtMatrix generates a new rotation Matrix4 for an object at from to look towards to. Since cameras look down -Z,
// the returned matrix's Forward() points from to back towards from. up is the upward vector (usually +Y, or [0, 1, 0]).
func NewLookAtMatrix(from, to, up Vector3) Matrix4 {

	// If from and to are the same, then an identity Matrix4 should be a sensible default
	if from.Equals(to) {
		return NewMatrix4()
	}

	z := from.Sub(to).Unit()

	up = up.Unit()

	// If z == up, then the matrix will be unusable, so we sub up out with another angle
	if z.Equals(up) || z.Equals(up.Invert()) {
		if !up.Equals(WorldRight) {
			up = WorldRight
		} else {
			up = WorldBackward
		}
	}

	x := up.Cross(z).Unit()
	y := z.Cross(x)
	return Matrix4{
		{x.X, x.Y, x.Z, 0},
		{y.X, y.Y, y.Z, 0},
		{z.X, z.Y, z.Z, 0},
		{0, 0, 0, 1},
	}
}

// Right returns the Matrix4's X axis, normalized.
func (matrix Matrix4) Right() Vector3 {
	return Vector3{
		X: matrix[0][0],
		Y: matrix[0][1],
		Z: matrix[0][2],
	}.Unit()
}

// Up returns the Matrix4's Y axis, normalized.
func (matrix Matrix4) Up() Vector3 {
	return Vector3{
		X: matrix[1][0],
		Y: matrix[1][1],
		Z: matrix[1][2],
	}.Unit()
}

// Forward returns the Matrix4's Z axis, normalized. Flightpath headings face +Z.
func (matrix Matrix4) Forward() Vector3 {
	return Vector3{
		X: matrix[2][0],
		Y: matrix[2][1],
		Z: matrix[2][2],
	}.Unit()
}

// Transposed swaps the Matrix4's rows and columns. For a pure rotation that's the same as its inverse, which is how
// Camera builds its view matrix.
func (matrix Matrix4) Transposed() Matrix4 {
	var out Matrix4
	for row := range matrix {
		for col := range matrix[row] {
			out[col][row] = matrix[row][col]
		}
	}
	return out
}

// Mult returns matrix * other. With row vectors, v * a.Mult(b) applies a first and then b.
func (matrix Matrix4) Mult(other Matrix4) Matrix4 {

	newMat := Matrix4{}

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			newMat[row][col] = matrix[row][0]*other[0][col] +
				matrix[row][1]*other[1][col] +
				matrix[row][2]*other[2][col] +
				matrix[row][3]*other[3][col]
		}
	}

	return newMat

}

// MultVec transforms the point vect (as vect * matrix, with W = 1).
func (matrix Matrix4) MultVec(vect Vector3) Vector3 {

	return Vector3{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0],
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1],
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2],
	}

}

// MultVecW is MultVec for a point with W = 1, keeping the resulting W. Camera needs it for the perspective divide.
func (matrix Matrix4) MultVecW(vect Vector3) Vector4 {

	return Vector4{
		X: matrix[0][0]*vect.X + matrix[1][0]*vect.Y + matrix[2][0]*vect.Z + matrix[3][0],
		Y: matrix[0][1]*vect.X + matrix[1][1]*vect.Y + matrix[2][1]*vect.Z + matrix[3][1],
		Z: matrix[0][2]*vect.X + matrix[1][2]*vect.Y + matrix[2][2]*vect.Z + matrix[3][2],
		W: matrix[0][3]*vect.X + matrix[1][3]*vect.Y + matrix[2][3]*vect.Z + matrix[3][3],
	}

}

// NewProjectionPerspective generates a perspective projection Matrix4 for row vectors. fovy is the vertical field of view
// in degrees, near and far are the clipping planes, and viewWidth and viewHeight give the aspect ratio. After MultVecW,
// W holds the depth in front of the camera, and To3D() gives normalized device coordinates.
func NewProjectionPerspective(fovy, near, far, viewWidth, viewHeight float32) Matrix4 {

	aspect := viewWidth / viewHeight

	t := math32.Tan(fovy * math32.Pi / 360)
	b := -t
	r := t * aspect
	l := -r

	return Matrix4{
		{2 / (r - l), 0, 0, 0},
		{0, 2 / (t - b), 0, 0},
		{(r + l) / (r - l), (t + b) / (t - b), -(far + near) / (far - near), -1},
		{0, 0, -(2 * near * far) / (far - near), 0},
	}

}
