package flightpath

import (
	"fmt"
	"sort"

	"github.com/solarlune/flightpath/math32"
	"gopkg.in/yaml.v3"
)

// arcLengthDivisions is how many parametric samples a CatmullRomCurve takes to build its arc-length table.
const arcLengthDivisions = 200

// ChaikinSmooth cuts the corners of the polyline through points the number of times given. Each round replaces every
// edge with the two points 25% and 75% of the way along it; the first and last points are kept, so the smoothed line
// still starts and ends where the original did. The input slice isn't modified.
func ChaikinSmooth(points []Vector3, iterations int) []Vector3 {

	pts := append([]Vector3(nil), points...)

	if len(pts) < 2 {
		return pts
	}

	for iter := 0; iter < iterations; iter++ {
		next := make([]Vector3, 0, 2*len(pts))
		next = append(next, pts[0])
		for i := 0; i < len(pts)-1; i++ {
			next = append(next, pts[i].Lerp(pts[i+1], 0.25), pts[i].Lerp(pts[i+1], 0.75))
		}
		next = append(next, pts[len(pts)-1])
		pts = next
	}

	return pts

}

// BuildCurve smooths the waypoints with ChaikinSmooth and wraps the result in a centripetal CatmullRomCurve.
// The curve passes exactly through the first and last waypoints and near the rest.
func BuildCurve(waypoints []Vector3, iterations int) (*CatmullRomCurve, error) {

	if len(waypoints) < 2 {
		return nil, fmt.Errorf("build curve from %d waypoints: %w", len(waypoints), ErrTooFewWaypoints)
	}

	if iterations < 0 {
		return nil, fmt.Errorf("build curve with %d iterations: %w", iterations, ErrNegativeIterations)
	}

	return NewCatmullRomCurve(ChaikinSmooth(waypoints, iterations))

}

// CatmullRomCurve is an immutable centripetal (alpha 0.5) Catmull-Rom spline running through its control points.
// The curve is open; the ends are extrapolated by mirroring the neighbouring control point.
type CatmullRomCurve struct {
	points     []Vector3
	arcLengths []float32 // cumulative length at each of the arcLengthDivisions+1 parametric samples
}

// NewCatmullRomCurve creates a curve through the points given, which are copied. It fails if there are fewer than two
// points, if any coordinate isn't finite, or if the curve has no length.
func NewCatmullRomCurve(points []Vector3) (*CatmullRomCurve, error) {

	if len(points) < 2 {
		return nil, fmt.Errorf("catmull-rom curve with %d points: %w", len(points), ErrTooFewWaypoints)
	}

	for i, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("catmull-rom point %d is %v: %w", i, p, ErrDegenerateCurve)
		}
	}

	curve := &CatmullRomCurve{points: append([]Vector3(nil), points...)}

	curve.arcLengths = make([]float32, 0, arcLengthDivisions+1)
	curve.arcLengths = append(curve.arcLengths, 0)

	last := curve.Point(0)
	sum := float32(0)

	for d := 1; d <= arcLengthDivisions; d++ {
		current := curve.Point(float32(d) / arcLengthDivisions)
		sum += current.Distance(last)
		curve.arcLengths = append(curve.arcLengths, sum)
		last = current
	}

	if !(sum > 0) || !math32.IsFinite(sum) {
		return nil, fmt.Errorf("catmull-rom curve length %v: %w", sum, ErrDegenerateCurve)
	}

	return curve, nil

}

// ControlPoints returns a copy of the points the curve runs through.
func (curve *CatmullRomCurve) ControlPoints() []Vector3 {
	return append([]Vector3(nil), curve.points...)
}

// Length returns the approximate arc length of the curve.
func (curve *CatmullRomCurve) Length() float32 {
	return curve.arcLengths[len(curve.arcLengths)-1]
}

// Point returns the point at parameter t (0 to 1, clamped). The parameter is spread evenly over the control points,
// not over distance; use PointAt for even spacing.
func (curve *CatmullRomCurve) Point(t float32) Vector3 {

	t = math32.Clamp01(t)

	l := len(curve.points)
	p := float32(l-1) * t

	intPoint := int(math32.Floor(p))
	weight := p - float32(intPoint)

	if intPoint >= l-1 {
		intPoint = l - 2
		weight = 1
	}

	var p0, p3 Vector3

	if intPoint > 0 {
		p0 = curve.points[intPoint-1]
	} else {
		p0 = curve.points[0].Scale(2).Sub(curve.points[1])
	}

	p1 := curve.points[intPoint]
	p2 := curve.points[intPoint+1]

	if intPoint+2 < l {
		p3 = curve.points[intPoint+2]
	} else {
		p3 = curve.points[l-1].Scale(2).Sub(curve.points[l-2])
	}

	// Centripetal knot spacing: |p_i+1 - p_i| ^ 0.5
	dt0 := math32.Pow(p0.DistanceSquared(p1), 0.25)
	dt1 := math32.Pow(p1.DistanceSquared(p2), 0.25)
	dt2 := math32.Pow(p2.DistanceSquared(p3), 0.25)

	// Repeated points
	if dt1 < 1e-4 {
		dt1 = 1
	}
	if dt0 < 1e-4 {
		dt0 = dt1
	}
	if dt2 < 1e-4 {
		dt2 = dt1
	}

	return Vector3{
		X: nonuniformCatmullRom(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2, weight),
		Y: nonuniformCatmullRom(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2, weight),
		Z: nonuniformCatmullRom(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2, weight),
	}

}

// nonuniformCatmullRom evaluates one axis of the segment x1 -> x2 at w, using tangents computed over the
// knot intervals dt0, dt1, dt2 and rescaled to the [0, 1] segment parameter.
func nonuniformCatmullRom(x0, x1, x2, x3, dt0, dt1, dt2, w float32) float32 {

	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2

	t1 *= dt1
	t2 *= dt1

	c0 := x1
	c1 := t1
	c2 := -3*x1 + 3*x2 - 2*t1 - t2
	c3 := 2*x1 - 2*x2 + t1 + t2

	return c0 + c1*w + c2*w*w + c3*w*w*w

}

// PointAt returns the point u (0 to 1) of the way along the curve's length. u is clamped, so values below 0 give the
// first control point and values above 1 give the last.
func (curve *CatmullRomCurve) PointAt(u float32) Vector3 {
	return curve.Point(curve.uToT(u))
}

// uToT maps an arc-length fraction to the curve parameter using the arc-length table.
func (curve *CatmullRomCurve) uToT(u float32) float32 {

	if math32.IsNaN(u) {
		u = 0
	}
	u = math32.Clamp01(u)

	lengths := curve.arcLengths
	il := len(lengths)
	target := u * lengths[il-1]

	// Last index whose cumulative length is below the target
	i := sort.Search(il, func(i int) bool { return lengths[i] >= target }) - 1
	if i < 0 {
		return 0
	}
	if i >= il-1 {
		return 1
	}

	before := lengths[i]
	segment := lengths[i+1] - before
	if segment <= 0 {
		return float32(i) / float32(il-1)
	}

	return (float32(i) + (target-before)/segment) / float32(il-1)

}

// Points returns divisions+1 points sampled at evenly spaced curve parameters (not evenly spaced distances).
// Feeding these back into NewCatmullRomCurve is how a rough curve gets resampled into a denser, smoother one.
func (curve *CatmullRomCurve) Points(divisions int) []Vector3 {
	if divisions < 1 {
		divisions = 1
	}
	out := make([]Vector3, 0, divisions+1)
	for d := 0; d <= divisions; d++ {
		out = append(out, curve.Point(float32(d)/float32(divisions)))
	}
	return out
}

var _ Path = &CatmullRomCurve{}

// WaveSpec describes an S-shaped path that swings left and right while it travels from ZStart to ZEnd.
type WaveSpec struct {
	Steps  int     `yaml:"steps"`  // Number of segments; the path has Steps+1 points
	Amp    float32 `yaml:"amp"`    // Sideways swing, tapered to 80% toward the end
	Waves  float32 `yaml:"waves"`  // Number of half-turns between the two ends
	ZStart float32 `yaml:"zStart"` // Depth of the first point
	ZEnd   float32 `yaml:"zEnd"`   // Depth of the last point
	Y0     float32 `yaml:"y0"`     // Height at the start
	Y1     float32 `yaml:"y1"`     // Height at the end, eased in with smoothstep
}

// NewWavePath generates the points of the wave described by spec.
func NewWavePath(spec WaveSpec) ([]Vector3, error) {

	if spec.Steps < 1 {
		return nil, fmt.Errorf("wave with %d steps: %w", spec.Steps, ErrTooFewWaypoints)
	}

	pts := make([]Vector3, 0, spec.Steps+1)

	for i := 0; i <= spec.Steps; i++ {
		t := float32(i) / float32(spec.Steps)
		amp := spec.Amp * (0.9 + 0.1*math32.Cos(math32.Pi*t))
		x := math32.Sin(math32.Pi*spec.Waves*t) * amp
		pts = append(pts, Vector3{
			X: -x,
			Y: math32.Lerp(spec.Y0, spec.Y1, math32.Smoothstep(t)),
			Z: math32.Lerp(spec.ZStart, spec.ZEnd, t),
		})
	}

	return pts, nil

}

// CurveSpec describes how a curve is built in a tuning file: either from explicit waypoints or from a wave,
// optionally resampled through a rough Catmull-Rom curve, then corner-cut and wrapped by BuildCurve.
type CurveSpec struct {
	Waypoints  []Vector3 `yaml:"waypoints,omitempty"`
	Wave       *WaveSpec `yaml:"wave,omitempty"`
	End        *Vector3  `yaml:"end,omitempty"`        // Replaces the last point when set
	PreSamples int       `yaml:"preSamples,omitempty"` // Resample through a rough curve into this many segments first (0 skips)
	Smoothing  int       `yaml:"smoothing,omitempty"`  // Chaikin iterations
}

// UnmarshalYAML decodes a CurveSpec from scratch, so a curve in a tuning override replaces the default curve
// outright instead of being merged into it.
func (spec *CurveSpec) UnmarshalYAML(value *yaml.Node) error {

	if err := rejectUnknownKeys(value, CurveSpec{}); err != nil {
		return err
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		field := value.Content[i+1]
		switch value.Content[i].Value {
		case "wave":
			if err := rejectUnknownKeys(field, WaveSpec{}); err != nil {
				return err
			}
		case "end":
			if err := rejectUnknownKeys(field, Vector3{}); err != nil {
				return err
			}
		case "waypoints":
			for _, point := range field.Content {
				if err := rejectUnknownKeys(point, Vector3{}); err != nil {
					return err
				}
			}
		}
	}

	type plain CurveSpec
	var decoded plain
	if err := value.Decode(&decoded); err != nil {
		return err
	}

	*spec = CurveSpec(decoded)

	return nil

}

// Build runs the CurveSpec's pipeline and returns the finished curve.
func (spec CurveSpec) Build() (*CatmullRomCurve, error) {

	if spec.Wave != nil && len(spec.Waypoints) > 0 {
		return nil, ErrAmbiguousCurve
	}

	var pts []Vector3

	if spec.Wave != nil {
		wave, err := NewWavePath(*spec.Wave)
		if err != nil {
			return nil, err
		}
		pts = wave
	} else {
		pts = append(pts, spec.Waypoints...)
	}

	if len(pts) < 2 {
		return nil, fmt.Errorf("curve spec with %d points: %w", len(pts), ErrTooFewWaypoints)
	}

	if spec.End != nil {
		pts[len(pts)-1] = *spec.End
	}

	if spec.PreSamples < 0 {
		return nil, fmt.Errorf("curve spec with %d pre-samples: %w", spec.PreSamples, ErrNegativeIterations)
	}

	if spec.PreSamples > 0 {
		rough, err := NewCatmullRomCurve(pts)
		if err != nil {
			return nil, err
		}
		pts = rough.Points(spec.PreSamples)
	}

	return BuildCurve(pts, spec.Smoothing)

}
