package realtime

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/cwbudde/algo-freeverb/dsp/core"
)

// bytesPerFrame is two float32 channels.
const bytesPerFrame = 8

// ErrEmptyLoop is returned for a loop without samples.
var ErrEmptyLoop = errors.New("realtime: loop input is empty")

// LoopReader is an io.Reader of interleaved float32 little-endian stereo
// frames: a mono input played in a loop through a Processor.
type LoopReader struct {
	proc  *Processor
	input []float64
	pos   int

	in  []float64
	out []float64
}

// NewLoopReader loops input through proc.
func NewLoopReader(proc *Processor, input []float64) (*LoopReader, error) {
	if len(input) == 0 {
		return nil, ErrEmptyLoop
	}
	return &LoopReader{proc: proc, input: input}, nil
}

// Read fills p with whole frames. It never returns an error.
func (r *LoopReader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	r.in = core.EnsureLen(r.in, frames)
	r.out = core.EnsureLen(r.out, 2*frames)

	for i := range r.in {
		r.in[i] = r.input[r.pos]
		r.pos++
		if r.pos == len(r.input) {
			r.pos = 0
		}
	}

	// Buffers are sized above.
	_ = r.proc.Process(r.in, r.out)

	for i, v := range r.out {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(float32(v)))
	}
	return frames * bytesPerFrame, nil
}
