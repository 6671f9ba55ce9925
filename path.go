package flightpath

import (
	"github.com/solarlune/flightpath/math32"
)

// Path represents anything that can be drawn or walked as a sequence of points across a distance.
// Both Polyline and CatmullRomCurve implement it.
type Path interface {
	// Length returns the length of the overall path.
	Length() float32
	// PointAt returns the point at the given percentage (0 to 1) of the Path's length. The percentage is clamped.
	PointAt(perc float32) Vector3
}

// A Polyline is an immutable sequence of points joined by straight segments.
type Polyline struct {
	points []Vector3
	length float32
}

// NewPolyline returns a new Polyline running through the points given. The slice is copied.
func NewPolyline(points ...Vector3) *Polyline {
	poly := &Polyline{points: append([]Vector3(nil), points...)}
	for i := 1; i < len(poly.points); i++ {
		poly.length += poly.points[i].Distance(poly.points[i-1])
	}
	return poly
}

// Length returns the total distance that a Polyline covers by stepping through all of its points.
func (poly *Polyline) Length() float32 {
	return poly.length
}

// Points returns a copy of the points in the Polyline.
func (poly *Polyline) Points() []Vector3 {
	return append([]Vector3(nil), poly.points...)
}

// HopCount returns the number of hops in the path (i.e. number of points - 1).
func (poly *Polyline) HopCount() int {
	return len(poly.points) - 1
}

// PointAt returns a position on the Polyline, if given a percentage value that ranges from 0 to 1.
// The percentage is weighted for distance, not for number of points.
// For example, say you had a path comprised of four points: {0, 0, 0}, {9, 0, 0}, {9.5, 0, 0}, and {10, 0, 0}. If you called PointAt(0.9), you'd get {9, 0, 0} (90% of the way through the path).
// If the Polyline has no points, this function returns an empty Vector.
func (poly *Polyline) PointAt(perc float32) Vector3 {

	if len(poly.points) == 0 {
		return Vector3{}
	}

	if len(poly.points) == 1 || poly.length == 0 {
		return poly.points[0]
	}

	perc = math32.Clamp(perc, 0, 1)

	d := perc

	worldPos := poly.points[len(poly.points)-1]

	for i := 0; i < len(poly.points)-1; i++ {
		segment := poly.points[i+1].Sub(poly.points[i])
		segmentDistance := segment.Magnitude() / poly.length
		if d > segmentDistance {
			d -= segmentDistance
		} else {
			if segmentDistance == 0 {
				worldPos = poly.points[i]
			} else {
				worldPos = poly.points[i].Add(segment.Scale(d / segmentDistance))
			}
			break
		}
	}

	return worldPos

}

// SamplePath returns count+1 evenly spaced points along the Path, from its start to its end.
// It's used to draw curves as line strips.
func SamplePath(path Path, count int) []Vector3 {
	if count < 1 {
		count = 1
	}
	out := make([]Vector3, 0, count+1)
	for i := 0; i <= count; i++ {
		out = append(out, path.PointAt(float32(i)/float32(count)))
	}
	return out
}

var _ Path = &Polyline{} // Sanity check to ensure Polyline implements Path.
