// math32 is a stand-in for the built-in math package, but the functions take float32s instead of float64s.
// flightpath works in float32 throughout (vectors, matrices, scroll progress), so this keeps conversions out of the sequencing code.
package math32

import (
	"math"
)

const Pi = math.Pi

const MaxFloat32 = float32(math.MaxFloat32)

// ToRadians is a helper function to easily convert degrees to radians.
func ToRadians(degrees float32) float32 {
	return math.Pi * degrees / 180
}

// ToDegrees is a helper function to easily convert radians to degrees for human readability.
func ToDegrees(radians float32) float32 {
	return radians / math.Pi * 180
}

// Min returns the minimum value out of two provided values.
func Min[number float32 | float64 | int | int32 | int64](x, y number) number {
	if x < y {
		return x
	}
	return y
}

// Max returns the maximum value out of two provided values.
func Max[number float32 | float64 | int | int32 | int64](x, y number) number {
	if x > y {
		return x
	}
	return y
}

// Clamp clamps a value to the minimum and maximum values provided.
func Clamp[number float32 | float64 | int | int32 | int64](value, min, max number) number {
	if value < min {
		return min
	} else if value > max {
		return max
	}
	return value
}

// Clamp01 clamps the value to the 0 to 1 range. NaN clamps to 0.
func Clamp01(value float32) float32 {
	if value > 1 {
		return 1
	}
	if value >= 0 {
		return value
	}
	return 0
}

// Lerp linearly interpolates from start to end by the percentage given. The percentage isn't clamped.
func Lerp(start, end, percentage float32) float32 {
	return start + (end-start)*percentage
}

// InverseLerp returns how far value is between start and end, clamped to 0 to 1.
// If start and end are the same, InverseLerp returns 1 if value is at or past them, and 0 otherwise.
func InverseLerp(start, end, value float32) float32 {
	if start == end {
		if value >= end {
			return 1
		}
		return 0
	}
	return Clamp01((value - start) / (end - start))
}

// Smoothstep is the cubic ease x²(3-2x). x is clamped to 0 to 1 first, so the ends are exact.
func Smoothstep(x float32) float32 {
	x = Clamp01(x)
	return x * x * (3 - 2*x)
}

// SmoothstepRange runs Smoothstep over how far value is between edge0 and edge1.
// edge0 may be larger than edge1, in which case the curve falls as value rises.
func SmoothstepRange(edge0, edge1, value float32) float32 {
	if edge0 == edge1 {
		if value >= edge1 {
			return 1
		}
		return 0
	}
	return Smoothstep((value - edge0) / (edge1 - edge0))
}

// DampFactor returns the blend amount 1 - e^(-k * dt), which is the fraction of the remaining distance that
// exponential-decay smoothing covers in dt seconds with a strength of k.
// Stepping twice by dt/2 covers exactly as much as stepping once by dt, so the result doesn't depend on frame rate.
func DampFactor(k, dt float32) float32 {
	if dt <= 0 || k <= 0 {
		return 0
	}
	return float32(-math.Expm1(-float64(k) * float64(dt)))
}

// Damp moves current toward target with exponential decay of strength k over dt seconds.
func Damp(current, target, k, dt float32) float32 {
	return current + (target-current)*DampFactor(k, dt)
}

// WrapAngle wraps an angle in radians to the -Pi to Pi range.
func WrapAngle(angle float32) float32 {
	return Atan2(Sin(angle), Cos(angle))
}

// LerpAngle interpolates from angle a to b (in radians) along the shortest arc. percentage is clamped to 0 to 1.
func LerpAngle(a, b, percentage float32) float32 {
	return a + WrapAngle(b-a)*Clamp01(percentage)
}

// DampAngle moves the current angle toward the target angle along the shortest arc with exponential decay.
func DampAngle(current, target, k, dt float32) float32 {
	return LerpAngle(current, target, DampFactor(k, dt))
}

// Sign returns the sign of the value given. If it's greater than 0, it returns 1. If less than 0, it returns -1. Otherwise, it returns 0.
func Sign(f float32) float32 {
	if f > 0 {
		return 1
	} else if f < 0 {
		return -1
	}
	return 0
}

// IsNaN returns if the provided float32 is a NaN.
func IsNaN(x float32) bool {
	return math.IsNaN(float64(x))
}

// IsInf returns if the provided float32 (x) is Inf in the direction of the sign provided.
func IsInf(x float32, sign int) bool {
	return math.IsInf(float64(x), sign)
}

// IsFinite returns if the provided float32 is neither NaN nor infinite.
func IsFinite(x float32) bool {
	return !IsNaN(x) && !IsInf(x, 0)
}

// Pow returns x**y, the base-x exponential of y.
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// Sqrt returns the square root of x.
//
// Special cases are:
//
//	Sqrt(+Inf) = +Inf
//	Sqrt(±0) = ±0
//	Sqrt(x < 0) = NaN
//	Sqrt(NaN) = NaN
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Sin returns the sine of the radian argument x.
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos returns the cosine of the radian argument x.
func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// Tan returns the tangent of the radian argument x.
func Tan(x float32) float32 {
	return float32(math.Tan(float64(x)))
}

// Atan2 returns the arc tangent of y/x, using the signs of the two to determine the quadrant of the return value.
func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

// Floor returns the greatest integer value less than or equal to x.
func Floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// Exp returns e**x, the base-e exponential of x.
func Exp(x float32) float32 {
	return float32(math.Exp(float64(x)))
}

// Round returns the nearest integer, rounding half away from zero.
func Round(x float32) float32 {
	return float32(math.Round(float64(x)))
}
