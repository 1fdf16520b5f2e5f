package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by frame constructors.
var (
	ErrInvalidChannels = errors.New("buffer: channel count must be >= 1")
	ErrRaggedData      = errors.New("buffer: sample count is not a multiple of the channel count")
)

// Frames holds interleaved sample frames.
type Frames struct {
	samples  []float64
	channels int
}

// NewFrames returns zero-filled storage for frames x channels samples.
func NewFrames(frames, channels int) (*Frames, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if frames < 0 {
		frames = 0
	}
	return &Frames{samples: make([]float64, frames*channels), channels: channels}, nil
}

// FramesFromSlice wraps interleaved data without copying.
// Mutations to data are visible through the Frames and vice versa.
func FramesFromSlice(data []float64, channels int) (*Frames, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if len(data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples, %d channels", ErrRaggedData, len(data), channels)
	}
	return &Frames{samples: data, channels: channels}, nil
}

// Samples returns the interleaved backing slice.
func (f *Frames) Samples() []float64 {
	return f.samples
}

// Channels returns the number of samples per frame.
func (f *Frames) Channels() int {
	return f.channels
}

// Len returns the number of frames.
func (f *Frames) Len() int {
	return len(f.samples) / f.channels
}

// At returns the sample of channel ch in frame i.
func (f *Frames) At(i, ch int) float64 {
	return f.samples[i*f.channels+ch]
}

// Set stores v as the sample of channel ch in frame i.
func (f *Frames) Set(i, ch int, v float64) {
	f.samples[i*f.channels+ch] = v
}

// Frame returns the samples of frame i as a subslice of the backing data.
func (f *Frames) Frame(i int) []float64 {
	start := i * f.channels
	return f.samples[start : start+f.channels]
}

// Resize sets the frame count to n, reusing capacity when possible.
// Newly exposed samples are zeroed.
func (f *Frames) Resize(n int) {
	if n < 0 {
		n = 0
	}
	want := n * f.channels
	oldLen := len(f.samples)
	if want <= cap(f.samples) {
		f.samples = f.samples[:want]
	} else {
		s := make([]float64, want)
		copy(s, f.samples)
		f.samples = s
	}
	for i := oldLen; i < want; i++ {
		f.samples[i] = 0
	}
}

// Zero sets all samples to 0.
func (f *Frames) Zero() {
	for i := range f.samples {
		f.samples[i] = 0
	}
}

// Copy returns a deep copy.
func (f *Frames) Copy() *Frames {
	s := make([]float64, len(f.samples))
	copy(s, f.samples)
	return &Frames{samples: s, channels: f.channels}
}

// Channel copies channel ch into dst (grown as needed) and returns it.
func (f *Frames) Channel(ch int, dst []float64) []float64 {
	n := f.Len()
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = f.samples[i*f.channels+ch]
	}
	return dst
}
