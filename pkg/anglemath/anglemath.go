// Package anglemath holds the scalar helpers shared by the motion controllers:
// angle wrapping, shortest signed deltas, interpolation and easing curves.
package anglemath

import "math"

// TwoPi is a full turn in radians
const TwoPi = 2 * math.Pi

// Normalize wraps an angle into the half-open interval (-π, π].
// Inputs of any magnitude are reduced in one step; NaN and ±Inf yield NaN.
func Normalize(a float64) float64 {
	r := math.Mod(a, TwoPi)
	if r <= -math.Pi {
		r += TwoPi
	} else if r > math.Pi {
		r -= TwoPi
	}
	return r
}

// ShortestDelta returns the signed rotation from one angle to another with
// magnitude at most π.
func ShortestDelta(from, to float64) float64 {
	return Normalize(to - from)
}

// Clamp01 limits x to [0, 1]
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Smoothstep is the cubic Hermite curve 3x²-2x³ on x clamped to [0, 1]
func Smoothstep(x float64) float64 {
	x = Clamp01(x)
	return x * x * (3 - 2*x)
}

// Lerp interpolates linearly between start and end
func Lerp(start, end, t float64) float64 {
	return start + (end-start)*t
}

// SmoothLerp interpolates between start and end along Smoothstep(progress)
func SmoothLerp(start, end, progress float64) float64 {
	return Lerp(start, end, Smoothstep(progress))
}

// EaseOutQuad is 1-(1-t)² on t clamped to [0, 1]
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}

// ExponentialInOut accelerates exponentially up to the midpoint and decelerates after it
func ExponentialInOut(t float64) float64 {
	t = Clamp01(t)
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case t < 0.5:
		return 0.5 * math.Pow(1024, 2*t-1)
	default:
		return 0.5 * (2 - math.Pow(2, -10*(2*t-1)))
	}
}

// Linear is the identity easing
func Linear(t float64) float64 {
	return Clamp01(t)
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
