// Package testutil holds deterministic signals and assertions shared by the
// package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Interleave merges planar left/right slices into L R L R ... order.
// The shorter slice bounds the result.
func Interleave(left, right []float64) []float64 {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}
	out := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		out[2*i] = left[i]
		out[2*i+1] = right[i]
	}
	return out
}

// Deinterleave splits L R L R ... data into planar slices.
func Deinterleave(data []float64) (left, right []float64) {
	n := len(data) / 2
	left = make([]float64, n)
	right = make([]float64, n)
	for i := 0; i < n; i++ {
		left[i] = data[2*i]
		right[i] = data[2*i+1]
	}
	return left, right
}

// WindowEnergies returns the sum of squares of consecutive, non-overlapping
// windows of x. A trailing partial window is dropped.
func WindowEnergies(x []float64, window int) []float64 {
	if window <= 0 {
		return nil
	}
	out := make([]float64, 0, len(x)/window)
	for start := 0; start+window <= len(x); start += window {
		var e float64
		for _, v := range x[start : start+window] {
			e += v * v
		}
		out = append(out, e)
	}
	return out
}
