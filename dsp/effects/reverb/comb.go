package reverb

import (
	"github.com/cwbudde/algo-freeverb/dsp/delay"
	"github.com/cwbudde/algo-freeverb/dsp/filter/onepole"
)

// combFilter is a lowpass-feedback comb (LBCF): a delay line whose output
// is smoothed by a one-pole filter before being fed back.
type combFilter struct {
	line   *delay.Line
	filter *onepole.Filter
}

func newCombFilter(length int) (combFilter, error) {
	line, err := delay.New(length)
	if err != nil {
		return combFilter{}, err
	}
	return combFilter{line: line, filter: onepole.New()}, nil
}

// tick reads the delayed sample before writing, feeds back the filtered
// tap and returns the sum written into the line.
func (c *combFilter) tick(input, feedback float64) float64 {
	yn := input + feedback*c.filter.Tick(c.line.NextOut())
	c.line.Tick(yn)
	return yn
}

func (c *combFilter) clear() {
	c.line.Clear()
	c.filter.Clear()
}

// combBank is the parallel comb section of one channel.
type combBank [numCombs]combFilter

func newCombBank(lengths [numCombs]int) (combBank, error) {
	var b combBank
	for i, n := range lengths {
		c, err := newCombFilter(n)
		if err != nil {
			return b, err
		}
		b[i] = c
	}
	return b, nil
}

func (b *combBank) tick(input, feedback float64) float64 {
	var acc float64
	for i := range b {
		acc += b[i].tick(input, feedback)
	}
	return acc
}

func (b *combBank) setDamp(damp float64) {
	for i := range b {
		b[i].filter.SetCoefficients(1-damp, -damp)
	}
}

func (b *combBank) clear() {
	for i := range b {
		b[i].clear()
	}
}
