package common

import "math"

// Epsilon is the tolerance used for surface contact tests.
const Epsilon = 2.220446049250313e-16 * 100

const (
	BaseWidth  = 960
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ClampInt clamps v into [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SumWithMagnitudeClamp adds delta to v and limits the magnitude of the
// result to |limit|, preserving its sign.
func SumWithMagnitudeClamp(v, delta, limit float64) float64 {
	sum := v + delta
	limit = math.Abs(limit)
	if math.Abs(sum) > limit {
		return math.Copysign(limit, sum)
	}
	return sum
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
