package dither

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	defaultBitDepth = 16
	minBitDepth     = 2
	maxBitDepth     = 32
)

// Errors returned by NewQuantizer and its options.
var (
	ErrInvalidBitDepth   = errors.New("dither: invalid bit depth")
	ErrInvalidDitherType = errors.New("dither: invalid dither type")
	ErrInvalidAmplitude  = errors.New("dither: invalid dither amplitude")
)

type config struct {
	bitDepth   int
	ditherType DitherType
	amplitude  float64
	limit      bool
	shaper     NoiseShaper
	rng        *rand.Rand
}

func defaultConfig() config {
	return config{
		bitDepth:   defaultBitDepth,
		ditherType: DitherTriangular,
		amplitude:  1,
		limit:      true,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBitDepth sets the target bit depth (2..32, default 16).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		if bits < minBitDepth || bits > maxBitDepth {
			return fmt.Errorf("%w: %d (expected %d..%d)", ErrInvalidBitDepth, bits, minBitDepth, maxBitDepth)
		}
		cfg.bitDepth = bits
		return nil
	}
}

// WithDitherType sets the noise distribution (default [DitherTriangular]).
func WithDitherType(dt DitherType) Option {
	return func(cfg *config) error {
		if !dt.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidDitherType, int(dt))
		}
		cfg.ditherType = dt
		return nil
	}
}

// WithDitherAmplitude scales the noise, in codes (default 1).
func WithDitherAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("%w: %g", ErrInvalidAmplitude, amp)
		}
		cfg.amplitude = amp
		return nil
	}
}

// WithLimit enables clipping to the bit-depth range (default true).
func WithLimit(enabled bool) Option {
	return func(cfg *config) error {
		cfg.limit = enabled
		return nil
	}
}

// WithNoiseShaper shapes the requantization error. The default is none.
func WithNoiseShaper(ns NoiseShaper) Option {
	return func(cfg *config) error {
		cfg.shaper = ns
		return nil
	}
}

// WithRNG fixes the noise source, for reproducible output.
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}
