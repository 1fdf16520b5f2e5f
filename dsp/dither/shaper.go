package dither

// NoiseShaper filters the requantization error. Per sample the quantizer
// calls Shape on the scaled input, rounds the result, then hands the
// rounding error to RecordError.
type NoiseShaper interface {
	Shape(input float64) float64
	RecordError(err float64)
	Reset()
}

// ErrorFeedback subtracts a weighted sum of past errors from each input.
// Coefficient k weights the error from k+1 samples ago.
type ErrorFeedback struct {
	coeffs []float64
	errs   []float64 // newest first
}

// NewErrorFeedback copies coeffs. An empty slice passes input through.
func NewErrorFeedback(coeffs ...float64) *ErrorFeedback {
	return &ErrorFeedback{
		coeffs: append([]float64(nil), coeffs...),
		errs:   make([]float64, len(coeffs)),
	}
}

// Order returns the number of error taps.
func (s *ErrorFeedback) Order() int { return len(s.coeffs) }

func (s *ErrorFeedback) Shape(input float64) float64 {
	for k, c := range s.coeffs {
		input -= c * s.errs[k]
	}
	return input
}

func (s *ErrorFeedback) RecordError(err float64) {
	if len(s.errs) == 0 {
		return
	}
	copy(s.errs[1:], s.errs)
	s.errs[0] = err
}

func (s *ErrorFeedback) Reset() {
	clear(s.errs)
}
