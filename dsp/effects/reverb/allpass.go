package reverb

import "github.com/cwbudde/algo-freeverb/dsp/delay"

// allpassFilter is a Schroeder allpass with one delay line and a fixed
// coefficient.
type allpassFilter struct {
	line *delay.Line
	g    float64
}

func newAllpassFilter(length int, g float64) (allpassFilter, error) {
	line, err := delay.New(length)
	if err != nil {
		return allpassFilter{}, err
	}
	return allpassFilter{line: line, g: g}, nil
}

func (a *allpassFilter) tick(input float64) float64 {
	vnm := a.line.NextOut()
	vn := input + a.g*vnm
	a.line.Tick(vn)
	return -vn + (1+a.g)*vnm
}

// allpassChain is the series allpass section of one channel.
type allpassChain [numAllpasses]allpassFilter

func newAllpassChain(lengths [numAllpasses]int, g float64) (allpassChain, error) {
	var c allpassChain
	for i, n := range lengths {
		a, err := newAllpassFilter(n, g)
		if err != nil {
			return c, err
		}
		c[i] = a
	}
	return c, nil
}

func (c *allpassChain) tick(input float64) float64 {
	for i := range c {
		input = c[i].tick(input)
	}
	return input
}

func (c *allpassChain) clear() {
	for i := range c {
		c[i].line.Clear()
	}
}
