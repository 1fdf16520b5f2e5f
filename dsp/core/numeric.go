package core

import "math"

// denormalThreshold is the magnitude below which feedback state is zeroed.
const denormalThreshold = 1e-30

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// InUnitRange reports whether v is finite and within [0, 1]. All normalised
// reverb parameters are validated with it.
func InUnitRange(v float64) bool {
	return IsFinite(v) && v >= 0 && v <= 1
}

// FlushDenormals returns 0 for |x| < 1e-30 and x otherwise. Recursive
// filters call it on their state so decaying tails end in exact zeros.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalThreshold {
		return 0
	}
	return x
}

// PowerToDB returns 10*log10(p), limited below by floorDB. Zero and
// negative powers map to floorDB.
func PowerToDB(p, floorDB float64) float64 {
	if p <= 0 {
		return floorDB
	}
	return math.Max(10*math.Log10(p), floorDB)
}

// EnsureLen returns buf resliced to n, allocating only when its capacity is
// too small. Existing contents are kept, not cleared.
func EnsureLen(buf []float64, n int) []float64 {
	switch {
	case n <= 0:
		return buf[:0]
	case cap(buf) < n:
		return make([]float64, n)
	}
	return buf[:n]
}
