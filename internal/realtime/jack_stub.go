//go:build !jack

package realtime

import "github.com/cwbudde/algo-freeverb/dsp/core"

// JackClient is unavailable without the jack build tag.
type JackClient struct{}

// NewJackClient always fails with ErrJackDisabled.
func NewJackClient(name string, opts ...core.ProcessorOption) (*JackClient, error) {
	return nil, ErrJackDisabled
}

// Processor returns nil.
func (jc *JackClient) Processor() *Processor { return nil }

// Start returns ErrJackDisabled.
func (jc *JackClient) Start() error { return ErrJackDisabled }

// Close returns ErrJackDisabled.
func (jc *JackClient) Close() error { return ErrJackDisabled }
