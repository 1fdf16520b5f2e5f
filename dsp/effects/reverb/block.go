package reverb

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-freeverb/dsp/buffer"
	"github.com/cwbudde/algo-freeverb/dsp/core"
)

// ProcessFrames processes interleaved mono or stereo frames in place.
// Mono frames receive the left output.
func (r *FreeVerb) ProcessFrames(frames *buffer.Frames) error {
	if err := checkFrames(frames); err != nil {
		return err
	}

	s := frames.Samples()
	if frames.Channels() == 2 {
		for i := 0; i+1 < len(s); i += 2 {
			s[i], s[i+1] = r.ProcessStereo(s[i], s[i+1])
		}
		return nil
	}

	for i := range s {
		s[i], _ = r.ProcessStereo(s[i], s[i])
	}
	return nil
}

// ProcessFramesTo reads frames from in and writes the output to out. Either
// side may be mono or stereo; out must hold at least in.Len() frames. A mono
// out receives the left channel.
func (r *FreeVerb) ProcessFramesTo(in, out *buffer.Frames) error {
	if err := checkFrames(in); err != nil {
		return err
	}
	if err := checkFrames(out); err != nil {
		return err
	}
	if out.Len() < in.Len() {
		return fmt.Errorf("%w: output holds %d frames, input has %d", ErrFrameCountMismatch, out.Len(), in.Len())
	}

	inStereo := in.Channels() == 2
	outStereo := out.Channels() == 2
	for i := 0; i < in.Len(); i++ {
		inL := in.At(i, 0)
		inR := inL
		if inStereo {
			inR = in.At(i, 1)
		}

		outL, outR := r.ProcessStereo(inL, inR)

		out.Set(i, 0, outL)
		if outStereo {
			out.Set(i, 1, outR)
		}
	}
	return nil
}

// ProcessBlock processes planar blocks. inR may be nil for mono input.
// Output slices may alias the input slice of the same channel. The wet/dry
// mix runs over whole blocks.
func (r *FreeVerb) ProcessBlock(inL, inR, outL, outR []float64) error {
	n := len(inL)
	if inR == nil {
		inR = inL
	}
	if len(inR) != n || len(outL) != n || len(outR) != n {
		return fmt.Errorf("%w: inL=%d inR=%d outL=%d outR=%d",
			ErrFrameCountMismatch, n, len(inR), len(outL), len(outR))
	}
	if n == 0 {
		return nil
	}

	r.wetL = core.EnsureLen(r.wetL, n)
	r.wetR = core.EnsureLen(r.wetR, n)
	r.dryL = core.EnsureLen(r.dryL, n)
	r.dryR = core.EnsureLen(r.dryR, n)
	r.cross = core.EnsureLen(r.cross, n)

	for i := 0; i < n; i++ {
		r.wetL[i], r.wetR[i] = r.tickWet(inL[i], inR[i])
	}

	// Dry terms first: outputs may alias inputs.
	vecmath.ScaleBlock(r.dryL, inL, r.dry)
	vecmath.ScaleBlock(r.dryR, inR, r.dry)

	vecmath.ScaleBlock(outL, r.wetL, r.wet1)
	vecmath.ScaleBlock(r.cross, r.wetR, r.wet2)
	vecmath.AddBlockInPlace(outL, r.cross)
	vecmath.AddBlockInPlace(outL, r.dryL)

	vecmath.ScaleBlock(outR, r.wetR, r.wet1)
	vecmath.ScaleBlock(r.cross, r.wetL, r.wet2)
	vecmath.AddBlockInPlace(outR, r.cross)
	vecmath.AddBlockInPlace(outR, r.dryR)

	r.lastFrame[0] = outL[n-1]
	r.lastFrame[1] = outR[n-1]

	return nil
}

func checkFrames(f *buffer.Frames) error {
	if f == nil {
		return fmt.Errorf("%w: nil frames", ErrInvalidChannelCount)
	}
	if ch := f.Channels(); ch < 1 || ch > numChannels {
		return fmt.Errorf("%w: got %d", ErrInvalidChannelCount, ch)
	}
	return nil
}
