package mathutil

import "math"

// Abramowitz and Stegun 7.1.26 coefficients; maximum absolute error 1.5e-7.
const (
	erfP  = 0.3275911
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
)

// Erf approximates the error function with the Abramowitz-Stegun rational
// approximation.
func Erf(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1.0
		x = -x
	}
	t := 1.0 / (1.0 + erfP*x)
	poly := ((((erfA5*t+erfA4)*t+erfA3)*t+erfA2)*t + erfA1) * t
	return sign * (1.0 - poly*math.Exp(-x*x))
}

// NormalCDF is the standard normal cumulative distribution function.
func NormalCDF(x float64) float64 {
	return 0.5 * (1.0 + Erf(x/math.Sqrt2))
}

// NormalPDF is the standard normal density.
func NormalPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// NormalQuantile inverts NormalCDF by bisection. p must lie in (0, 1); values
// outside are clamped to the search interval.
func NormalQuantile(p float64) float64 {
	lo, hi := -10.0, 10.0
	if p <= 0 {
		return lo
	}
	if p >= 1 {
		return hi
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		if NormalCDF(mid) < p {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-12 {
			break
		}
	}
	return (lo + hi) / 2
}

// TouchProbability estimates the probability that a driftless normal price
// path touches a level `distance` away within a horizon whose standard
// deviation is sigma (reflection principle), capped at 1.
func TouchProbability(distance, sigma float64) float64 {
	if sigma <= 0 {
		if distance <= 0 {
			return 1
		}
		return 0
	}
	p := 2 * (1 - NormalCDF(math.Abs(distance)/sigma))
	return Clamp(p, 0, 1)
}
