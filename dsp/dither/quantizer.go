package dither

import (
	"math"
	"math/rand/v2"
)

// Quantizer maps samples in [-1, 1) to signed integer codes.
type Quantizer struct {
	bitDepth   int
	ditherType DitherType
	amplitude  float64
	limit      bool
	shaper     NoiseShaper
	rng        *rand.Rand

	fullScale float64 // 2^(bitDepth-1)
	lo, hi    float64
}

// NewQuantizer creates a quantizer. Defaults: 16 bit, triangular dither
// of one code, clipping on, no noise shaping.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		bitDepth:   cfg.bitDepth,
		ditherType: cfg.ditherType,
		amplitude:  cfg.amplitude,
		limit:      cfg.limit,
		shaper:     cfg.shaper,
		rng:        cfg.rng,
	}
	if q.shaper == nil {
		q.shaper = NewErrorFeedback()
	}
	if q.rng == nil {
		q.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	q.fullScale = math.Ldexp(1, q.bitDepth-1)
	q.lo = -q.fullScale
	q.hi = q.fullScale - 1

	return q, nil
}

// ProcessInteger returns the code for x.
func (q *Quantizer) ProcessInteger(x float64) int {
	shaped := q.shaper.Shape(x * q.fullScale)

	code := math.Round(shaped + q.noise())
	if q.limit {
		code = min(q.hi, max(q.lo, code))
	}

	q.shaper.RecordError(code - shaped)
	return int(code)
}

// ProcessSample quantizes x and returns the code scaled back to [-1, 1).
func (q *Quantizer) ProcessSample(x float64) float64 {
	return float64(q.ProcessInteger(x)) / q.fullScale
}

// ProcessTo writes the codes for src into dst, which must be at least as
// long as src.
func (q *Quantizer) ProcessTo(dst []int, src []float64) {
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = q.ProcessInteger(x)
	}
}

// Reset clears the noise shaper history.
func (q *Quantizer) Reset() { q.shaper.Reset() }

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case DitherRectangular:
		return q.amplitude * (q.rng.Float64() - 0.5)
	case DitherTriangular:
		return q.amplitude * (q.rng.Float64() - q.rng.Float64())
	default:
		return 0
	}
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the noise distribution.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// DitherAmplitude returns the noise scale in codes.
func (q *Quantizer) DitherAmplitude() float64 { return q.amplitude }

// Limit reports whether output is clipped.
func (q *Quantizer) Limit() bool { return q.limit }

// Range returns the smallest and largest code.
func (q *Quantizer) Range() (lo, hi int) { return int(q.lo), int(q.hi) }
