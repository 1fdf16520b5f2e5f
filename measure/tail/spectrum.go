package tail

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Spectrum returns the magnitude of bins 0..fftSize/2 of the first fftSize
// samples of x. Shorter input is zero padded. No window is applied, so an
// impulse response is analyzed from its first sample.
func Spectrum(x []float64, fftSize int) ([]float64, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	in := make([]complex128, fftSize)
	for i := 0; i < len(x) && i < fftSize; i++ {
		in[i] = complex(x[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("tail: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("tail: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// SpectralCentroid returns the magnitude-weighted mean frequency of x in Hz.
// A silent input has a centroid of 0.
func SpectralCentroid(x []float64, sampleRate float64, fftSize int) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	mag, err := Spectrum(x, fftSize)
	if err != nil {
		return 0, err
	}

	binHz := sampleRate / float64(fftSize)

	var num, den float64
	for k, m := range mag {
		num += float64(k) * binHz * m
		den += m
	}
	if den == 0 {
		return 0, nil
	}
	return num / den, nil
}
