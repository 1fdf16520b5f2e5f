package tail

import (
	"errors"
	"fmt"
)

// analysisFFTSize is the transform length used by Analyze for centroids.
const analysisFFTSize = 1 << 14

// Metrics summarizes a stereo impulse response.
type Metrics struct {
	RT60        float64 // left channel, seconds; 0 if the tail does not decay far enough
	EDT         float64 // left channel early decay time, seconds
	PeakIndex   int     // left channel
	PeakLeft    float64
	PeakRight   float64
	EnergyLeft  float64
	EnergyRight float64
	Correlation float64 // left/right, zero lag
	CentroidL   float64 // Hz
	CentroidR   float64 // Hz
}

// Analyze computes Metrics for resp sampled at sampleRate.
func Analyze(resp Response, sampleRate float64) (Metrics, error) {
	if sampleRate <= 0 {
		return Metrics{}, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}
	if resp.Len() == 0 {
		return Metrics{}, ErrEmptyInput
	}
	if len(resp.Right) != len(resp.Left) {
		return Metrics{}, fmt.Errorf("%w: left %d, right %d", ErrLengthMismatch, len(resp.Left), len(resp.Right))
	}

	var m Metrics

	m.PeakIndex, m.PeakLeft = Peak(resp.Left)
	_, m.PeakRight = Peak(resp.Right)
	m.EnergyLeft = Energy(resp.Left)
	m.EnergyRight = Energy(resp.Right)

	var err error
	if m.Correlation, err = Correlation(resp.Left, resp.Right); err != nil {
		return Metrics{}, err
	}

	if m.RT60, err = RT60(resp.Left, sampleRate); err != nil && !errors.Is(err, ErrNoDecay) {
		return Metrics{}, err
	}
	if m.EDT, err = EDT(resp.Left, sampleRate); err != nil && !errors.Is(err, ErrNoDecay) {
		return Metrics{}, err
	}

	if m.CentroidL, err = SpectralCentroid(resp.Left, sampleRate, analysisFFTSize); err != nil {
		return Metrics{}, err
	}
	if m.CentroidR, err = SpectralCentroid(resp.Right, sampleRate, analysisFFTSize); err != nil {
		return Metrics{}, err
	}

	return m, nil
}
