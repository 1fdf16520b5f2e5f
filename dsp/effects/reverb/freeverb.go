package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-freeverb/dsp/core"
	"github.com/cwbudde/algo-freeverb/dsp/effects"
)

const (
	numCombs     = 8
	numAllpasses = 4
	numChannels  = 2

	stereoSpread        = 23
	referenceSampleRate = 44100.0

	fixedGain  = 0.015
	scaleWet   = 3.0
	scaleDry   = 2.0
	scaleDamp  = 0.4
	scaleRoom  = 0.28
	offsetRoom = 0.7

	allpassCoefficient = 0.5

	defaultMix      = 0.75
	defaultRoomSize = 0.75
	defaultDamp     = 0.25
	defaultWidth    = 1.0
)

// Delay line lengths in samples at 44.1 kHz.
var (
	combTuning    = [numCombs]int{1617, 1557, 1491, 1422, 1356, 1277, 1188, 1116}
	allpassTuning = [numAllpasses]int{225, 556, 441, 341}
)

var _ effects.AudioEffect = (*FreeVerb)(nil)

// DelayLengths lists the delay line lengths chosen for one engine.
type DelayLengths struct {
	CombLeft     [numCombs]int
	CombRight    [numCombs]int
	AllpassLeft  [numAllpasses]int
	AllpassRight [numAllpasses]int
}

// FreeVerb is a stereo Freeverb reverberator.
type FreeVerb struct {
	sampleRate float64
	lengths    DelayLengths

	// User-facing values. roomSizeMem and dampMem hold the mapped room size
	// and damping and survive freeze untouched.
	wetLevel    float64
	dryLevel    float64
	roomSizeMem float64
	dampMem     float64
	width       float64
	frozen      bool

	// Derived coefficients, recomputed by update.
	roomSize float64
	damp     float64
	gain     float64
	wet1     float64
	wet2     float64
	dry      float64

	combL    combBank
	combR    combBank
	allpassL allpassChain
	allpassR allpassChain

	lastFrame [numChannels]float64

	// Block-processing scratch.
	wetL, wetR, dryL, dryR, cross []float64
}

// NewFreeVerb creates a reverb for the given sample rate. Delay lengths are
// scaled from their 44.1 kHz tunings so the perceived room stays the same at
// any rate; the rate cannot be changed afterwards.
func NewFreeVerb(sampleRate float64) (*FreeVerb, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	r := &FreeVerb{
		sampleRate:  sampleRate,
		lengths:     scaledLengths(sampleRate / referenceSampleRate),
		wetLevel:    defaultMix,
		dryLevel:    1 - defaultMix,
		roomSizeMem: defaultRoomSize*scaleRoom + offsetRoom,
		dampMem:     defaultDamp * scaleDamp,
		width:       defaultWidth,
	}

	var err error
	if r.combL, err = newCombBank(r.lengths.CombLeft); err != nil {
		return nil, err
	}
	if r.combR, err = newCombBank(r.lengths.CombRight); err != nil {
		return nil, err
	}
	if r.allpassL, err = newAllpassChain(r.lengths.AllpassLeft, allpassCoefficient); err != nil {
		return nil, err
	}
	if r.allpassR, err = newAllpassChain(r.lengths.AllpassRight, allpassCoefficient); err != nil {
		return nil, err
	}

	r.update()

	return r, nil
}

// scaledLengths sizes left and right lines independently: right is always
// left plus the stereo spread.
func scaledLengths(scale float64) DelayLengths {
	var l DelayLengths
	for i, n := range combTuning {
		l.CombLeft[i] = scaleLength(n, scale)
		l.CombRight[i] = l.CombLeft[i] + stereoSpread
	}
	for i, n := range allpassTuning {
		l.AllpassLeft[i] = scaleLength(n, scale)
		l.AllpassRight[i] = l.AllpassLeft[i] + stereoSpread
	}
	return l
}

func scaleLength(n int, scale float64) int {
	scaled := int(math.Floor(scale * float64(n)))
	if scaled < 1 {
		return 1
	}
	return scaled
}

// SampleRate returns the rate the engine was built for.
func (r *FreeVerb) SampleRate() float64 { return r.sampleRate }

// DelayLengths returns the delay line lengths in samples.
func (r *FreeVerb) DelayLengths() DelayLengths { return r.lengths }

// Clear zeroes all comb and allpass memory and the last output frame.
// Parameters are not changed.
func (r *FreeVerb) Clear() {
	r.combL.clear()
	r.combR.clear()
	r.allpassL.clear()
	r.allpassR.clear()
	r.lastFrame = [numChannels]float64{}
}

// Tick processes one stereo input sample and returns the output of the
// requested channel. Both channels of the last frame are updated.
func (r *FreeVerb) Tick(inputL, inputR float64, channel int) (float64, error) {
	if err := checkChannel(channel); err != nil {
		return 0, err
	}

	r.ProcessStereo(inputL, inputR)

	return r.lastFrame[channel], nil
}

// TickMono drives both engine channels from a single input value.
func (r *FreeVerb) TickMono(input float64, channel int) (float64, error) {
	return r.Tick(input, input, channel)
}

// ProcessStereo processes one input frame and returns both output channels.
func (r *FreeVerb) ProcessStereo(inputL, inputR float64) (outL, outR float64) {
	cL, cR := r.tickWet(inputL, inputR)

	outL = cL*r.wet1 + cR*r.wet2 + inputL*r.dry
	outR = cR*r.wet1 + cL*r.wet2 + inputR*r.dry
	r.lastFrame[0] = outL
	r.lastFrame[1] = outR

	return outL, outR
}

// tickWet runs the comb bank and allpass chain of both channels and returns
// the unmixed reverberated signals.
func (r *FreeVerb) tickWet(inputL, inputR float64) (float64, float64) {
	in := (inputL + inputR) * r.gain

	cL := r.combL.tick(in, r.roomSize)
	cR := r.combR.tick(in, r.roomSize)

	return r.allpassL.tick(cL), r.allpassR.tick(cR)
}

// LastOut returns the most recent output of channel 0 (left) or 1 (right).
func (r *FreeVerb) LastOut(channel int) (float64, error) {
	if err := checkChannel(channel); err != nil {
		return 0, err
	}
	return r.lastFrame[channel], nil
}

// LastFrame returns the most recent stereo output frame.
func (r *FreeVerb) LastFrame() [2]float64 {
	return r.lastFrame
}

func checkChannel(channel int) error {
	if channel < 0 || channel >= numChannels {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}
	return nil
}
