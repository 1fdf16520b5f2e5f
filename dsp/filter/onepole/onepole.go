package onepole

import (
	"math"

	"github.com/cwbudde/algo-freeverb/dsp/core"
)

// Filter is a one-pole IIR section with a single sample of memory.
type Filter struct {
	b0   float64
	a1   float64
	last float64
}

// New returns a pass-through filter (b0 = 1, a1 = 0).
func New() *Filter {
	return &Filter{b0: 1}
}

// SetCoefficients sets b0 and a1. The filter memory is kept.
func (f *Filter) SetCoefficients(b0, a1 float64) {
	f.b0 = b0
	f.a1 = a1
}

// SetPole places the pole at p and normalises the peak gain to one:
// b0 = 1-|p|, a1 = -p.
func (f *Filter) SetPole(p float64) {
	f.b0 = 1 - math.Abs(p)
	f.a1 = -p
}

// Coefficients returns b0 and a1.
func (f *Filter) Coefficients() (b0, a1 float64) {
	return f.b0, f.a1
}

// Tick filters one sample.
func (f *Filter) Tick(x float64) float64 {
	f.last = core.FlushDenormals(f.b0*x - f.a1*f.last)
	return f.last
}

// LastOut returns the most recent output.
func (f *Filter) LastOut() float64 {
	return f.last
}

// Clear resets the filter memory.
func (f *Filter) Clear() {
	f.last = 0
}
