package reverb

import "errors"

// Errors returned by FreeVerb.
var (
	ErrInvalidSampleRate   = errors.New("reverb: sample rate must be finite and > 0")
	ErrInvalidParameter    = errors.New("reverb: parameter out of range")
	ErrInvalidChannel      = errors.New("reverb: channel must be 0 or 1")
	ErrInvalidChannelCount = errors.New("reverb: frames must have 1 or 2 channels")
	ErrFrameCountMismatch  = errors.New("reverb: buffer lengths do not match")
)
