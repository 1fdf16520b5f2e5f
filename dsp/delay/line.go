// Package delay provides the integer circular delay line used as the memory
// element of comb and allpass filters.
package delay

import (
	"errors"
	"fmt"
)

// ErrDelayOutOfRange is returned when a delay length does not fit the line.
var ErrDelayOutOfRange = errors.New("delay: delay length out of range")

// Line is a circular delay line with a single read tap.
//
// The tap always returns the sample written exactly Delay() ticks earlier.
// Storage holds MaxDelay()+1 samples so that a delay equal to the maximum
// still reads a value that has not been overwritten yet.
type Line struct {
	buffer   []float64
	inPos    int
	outPos   int
	delay    int
	maxDelay int
	last     float64
}

// New returns a delay line able to delay by up to maxDelay samples.
// The configured delay starts at maxDelay.
func New(maxDelay int) (*Line, error) {
	if maxDelay < 0 {
		return nil, fmt.Errorf("%w: maximum delay must be >= 0: %d", ErrDelayOutOfRange, maxDelay)
	}

	d := &Line{
		buffer:   make([]float64, maxDelay+1),
		maxDelay: maxDelay,
	}
	d.setDelay(maxDelay)

	return d, nil
}

// MaxDelay returns the largest delay the line accepts.
func (d *Line) MaxDelay() int {
	return d.maxDelay
}

// Delay returns the configured delay in samples.
func (d *Line) Delay() int {
	return d.delay
}

// SetMaximumDelay changes the largest accepted delay. Storage grows when
// needed and keeps the written history so the tap stays continuous. A maximum
// below the configured delay is rejected rather than truncating it.
func (d *Line) SetMaximumDelay(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: maximum delay must be >= 0: %d", ErrDelayOutOfRange, n)
	}
	if n < d.delay {
		return fmt.Errorf("%w: maximum delay %d is below configured delay %d", ErrDelayOutOfRange, n, d.delay)
	}

	if n+1 > len(d.buffer) {
		d.grow(n + 1)
	}
	d.maxDelay = n

	return nil
}

// SetDelay sets the active delay length, 0 <= delay <= MaxDelay().
func (d *Line) SetDelay(delay int) error {
	if delay < 0 || delay > d.maxDelay {
		return fmt.Errorf("%w: delay %d not in [0,%d]", ErrDelayOutOfRange, delay, d.maxDelay)
	}

	d.setDelay(delay)

	return nil
}

// Tick writes x, advances the line and returns the sample written Delay()
// ticks earlier.
func (d *Line) Tick(x float64) float64 {
	size := len(d.buffer)

	d.buffer[d.inPos] = x
	d.inPos++
	if d.inPos >= size {
		d.inPos = 0
	}

	d.last = d.buffer[d.outPos]
	d.outPos++
	if d.outPos >= size {
		d.outPos = 0
	}

	return d.last
}

// NextOut returns the value the next Tick will return, without advancing.
func (d *Line) NextOut() float64 {
	return d.buffer[d.outPos]
}

// LastOut returns the value returned by the most recent Tick.
func (d *Line) LastOut() float64 {
	return d.last
}

// Clear zeroes the stored samples. The configured delay is kept.
func (d *Line) Clear() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.last = 0
}

func (d *Line) setDelay(delay int) {
	d.delay = delay
	d.outPos = d.inPos - delay
	if d.outPos < 0 {
		d.outPos += len(d.buffer)
	}
}

func (d *Line) grow(size int) {
	old := d.buffer
	oldSize := len(old)
	grown := make([]float64, size)

	// Re-home history so the sample written j ticks ago sits j slots
	// behind the new write position 0.
	for j := 1; j < oldSize; j++ {
		src := d.inPos - j
		if src < 0 {
			src += oldSize
		}
		grown[size-j] = old[src]
	}

	d.buffer = grown
	d.inPos = 0
	d.setDelay(d.delay)
}
