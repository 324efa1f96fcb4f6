package mathutil

import "math"

// Bisect finds x in [lo, hi] with f(x) ~= 0 for a continuous monotonic f.
// When f does not change sign over the interval the endpoint with the
// smaller absolute value is returned.
func Bisect(f func(float64) float64, lo, hi, tolerance float64, maxIterations int) float64 {
	flo, fhi := f(lo), f(hi)
	if flo == 0 {
		return lo
	}
	if fhi == 0 {
		return hi
	}
	if math.Signbit(flo) == math.Signbit(fhi) {
		if math.Abs(flo) < math.Abs(fhi) {
			return lo
		}
		return hi
	}
	for i := 0; i < maxIterations; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if fmid == 0 || (hi-lo)/2 < tolerance {
			return mid
		}
		if math.Signbit(fmid) == math.Signbit(flo) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
