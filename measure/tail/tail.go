package tail

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-freeverb/dsp/core"
	"github.com/cwbudde/algo-freeverb/dsp/effects"
)

// Errors returned by tail measurements.
var (
	ErrEmptyInput        = errors.New("tail: input is empty")
	ErrLengthMismatch    = errors.New("tail: input lengths differ")
	ErrInvalidWindow     = errors.New("tail: window must be positive")
	ErrInvalidSampleRate = errors.New("tail: sample rate must be positive")
	ErrNoDecay           = errors.New("tail: insufficient decay for RT calculation")
	ErrInvalidFFTSize    = errors.New("tail: FFT size must be a power of two >= 2")
)

// schroederFloorDB is the level reported once the remaining energy is zero.
const schroederFloorDB = -200.0

// Response is the stereo output of an effect excited by a unit impulse.
type Response struct {
	Left  []float64
	Right []float64
}

// Len returns the number of frames in the response.
func (r Response) Len() int { return len(r.Left) }

// Render drives fx with a unit impulse on both inputs followed by silence
// and records length output frames. fx is not cleared first.
func Render(fx effects.AudioEffect, length int) (Response, error) {
	if length <= 0 {
		return Response{}, fmt.Errorf("%w: length %d", ErrEmptyInput, length)
	}

	resp := Response{
		Left:  make([]float64, length),
		Right: make([]float64, length),
	}

	in := 1.0
	for i := 0; i < length; i++ {
		l, err := fx.Tick(in, in, 0)
		if err != nil {
			return Response{}, err
		}
		r, err := fx.LastOut(1)
		if err != nil {
			return Response{}, err
		}
		resp.Left[i] = l
		resp.Right[i] = r
		in = 0
	}

	return resp, nil
}

// Energy returns the sum of squares of x.
func Energy(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.DotProduct(x, x)
}

// EnergyEnvelope returns the energy of consecutive windows of x. A trailing
// partial window is included.
func EnergyEnvelope(x []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	env := make([]float64, 0, (len(x)+window-1)/window)
	for start := 0; start < len(x); start += window {
		end := min(start+window, len(x))
		env = append(env, Energy(x[start:end]))
	}
	return env, nil
}

// Peak returns the index and absolute value of the largest magnitude sample.
// The first occurrence wins; an empty input returns -1. A NaN sample beats
// every number and is reported at its own index.
func Peak(x []float64) (int, float64) {
	if len(x) == 0 {
		return -1, 0
	}
	for i, v := range x {
		if math.IsNaN(v) {
			return i, v
		}
	}

	peak := vecmath.MaxAbs(x)
	for i, v := range x {
		if math.Abs(v) == peak {
			return i, peak
		}
	}
	return -1, peak
}

// Correlation returns the normalized zero-lag cross-correlation of a and b,
// in [-1, 1]. It is 0 when either input is silent.
func Correlation(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, ErrEmptyInput
	}

	ea := Energy(a)
	eb := Energy(b)
	if ea == 0 || eb == 0 {
		return 0, nil
	}

	c := vecmath.DotProduct(a, b) / math.Sqrt(ea*eb)
	return math.Max(-1, math.Min(1, c)), nil
}

// SchroederCurve returns the backward-integrated energy of x in dB,
// normalized to 0 dB at the first sample.
func SchroederCurve(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	curve := make([]float64, len(x))

	var sum float64
	for i := len(x) - 1; i >= 0; i-- {
		sum += x[i] * x[i]
		curve[i] = sum
	}

	total := curve[0]
	if total <= 0 {
		for i := range curve {
			curve[i] = schroederFloorDB
		}
		return curve, nil
	}

	for i, v := range curve {
		curve[i] = core.PowerToDB(v/total, schroederFloorDB)
	}
	return curve, nil
}

// RT60 estimates the reverberation time of x in seconds from the -5 to
// -35 dB range of its Schroeder curve, falling back to -5 to -25 dB.
func RT60(x []float64, sampleRate float64) (float64, error) {
	curve, err := checkedCurve(x, sampleRate)
	if err != nil {
		return 0, err
	}

	if rt := decayTime(curve, sampleRate, -5, -35); rt > 0 {
		return rt, nil
	}
	if rt := decayTime(curve, sampleRate, -5, -25); rt > 0 {
		return rt, nil
	}
	return 0, ErrNoDecay
}

// EDT returns the early decay time of x in seconds, extrapolated from the
// first 10 dB of decay.
func EDT(x []float64, sampleRate float64) (float64, error) {
	curve, err := checkedCurve(x, sampleRate)
	if err != nil {
		return 0, err
	}

	if rt := decayTime(curve, sampleRate, 0, -10); rt > 0 {
		return rt, nil
	}
	return 0, ErrNoDecay
}

func checkedCurve(x []float64, sampleRate float64) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}
	return SchroederCurve(x)
}

// decayTime fits a line to curve between startDB and endDB and extrapolates
// it to -60 dB. It returns 0 if the curve never spans the range.
func decayTime(curve []float64, sampleRate, startDB, endDB float64) float64 {
	startIdx, endIdx := -1, -1
	for i, v := range curve {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}
		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}
	if startIdx < 0 || endIdx <= startIdx {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64
	for i := startIdx; i <= endIdx; i++ {
		x := float64(i - startIdx)
		y := curve[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(endIdx - startIdx + 1)
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / denom // dB per sample
	if slope >= 0 {
		return 0
	}
	return -60 / (slope * sampleRate)
}
