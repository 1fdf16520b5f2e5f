package testutil

import (
	"fmt"
	"math"
	"testing"
)

// MaxAbsDiff returns max |a[i]-b[i]|.
func MaxAbsDiff(a, b []float64) (float64, error) {
	d, _, err := worstDiff(a, b)
	return d, err
}

func worstDiff(a, b []float64) (diff float64, at int, err error) {
	if len(a) != len(b) {
		return 0, -1, fmt.Errorf("testutil: length mismatch: %d vs %d", len(a), len(b))
	}
	at = -1
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > diff || math.IsNaN(d) {
			diff, at = d, i
		}
	}
	return diff, at, nil
}

// RequireSliceNearlyEqual fails t unless got and want have equal length and
// agree within eps everywhere. The worst sample is reported.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	d, at, err := worstDiff(got, want)
	if err != nil {
		t.Fatal(err)
	}
	if at >= 0 && !(d <= eps) {
		t.Fatalf("sample %d: got %v, want %v (|diff| %g > %g)", at, got[at], want[at], d, eps)
	}
}

// RequireFinite fails t on the first NaN or infinity in x.
func RequireFinite(t *testing.T, x []float64) {
	t.Helper()

	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d is %v", i, v)
		}
	}
}

// RequireSilent fails t on the first sample that is not exactly zero.
func RequireSilent(t *testing.T, x []float64) {
	t.Helper()

	for i, v := range x {
		if v != 0 {
			t.Fatalf("sample %d = %v, want silence", i, v)
		}
	}
}
