// Package realtime runs the reverb inside an audio callback: mono input in,
// stereo output out, with parameter changes queued from other goroutines
// and applied between samples. Both outputs pass through a Gate that the
// on and off changes ramp up and down.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/GeoffreyPlitt/debuggo"

	"github.com/cwbudde/algo-freeverb/dsp/core"
	"github.com/cwbudde/algo-freeverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-freeverb/internal/control"
)

var debug = debuggo.Debug("freeverb:realtime")

// Errors returned by the realtime hosts.
var (
	ErrBufferSize   = errors.New("realtime: output must hold two samples per input frame")
	ErrJackDisabled = errors.New("realtime: JACK support not enabled, rebuild with -tags jack")
)

// fadePoll is how often FadeOut checks the gate.
const fadePoll = 5 * time.Millisecond

// Processor owns a reverb, its output gate and the queue of changes
// waiting for them.
type Processor struct {
	fx    *reverb.FreeVerb
	gate  *Gate
	queue control.Queue
	cfg   core.ProcessorConfig

	pending      []control.Change
	untilControl int

	rejected atomic.Int64
	silent   atomic.Bool
}

// NewProcessor creates a processor with a reverb at the configured sample
// rate. The gate starts open.
func NewProcessor(opts ...core.ProcessorOption) (*Processor, error) {
	cfg := core.ApplyProcessorOptions(opts...)

	fx, err := reverb.NewFreeVerb(cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	return &Processor{fx: fx, gate: NewGate(1, GateRate), cfg: cfg}, nil
}

// Config returns the processor settings.
func (p *Processor) Config() core.ProcessorConfig { return p.cfg }

// Reverb returns the engine. Only touch it from the audio goroutine; use
// Push everywhere else.
func (p *Processor) Reverb() *reverb.FreeVerb { return p.fx }

// Push queues a change. It is safe to call from any goroutine.
func (p *Processor) Push(c control.Change) { p.queue.Push(c) }

// Rejected returns how many queued changes failed to apply. It is safe to
// call from any goroutine.
func (p *Processor) Rejected() int { return int(p.rejected.Load()) }

// Silent reports whether the gate has closed all the way. It is safe to
// call from any goroutine.
func (p *Processor) Silent() bool { return p.silent.Load() }

// FadeOut queues an off change and waits until the audio goroutine has
// ramped the gate to zero, or ctx ends.
func (p *Processor) FadeOut(ctx context.Context) error {
	p.Push(control.Change{Param: control.Off})

	ticker := time.NewTicker(fadePoll)
	defer ticker.Stop()
	for !p.Silent() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("realtime: fade out: %w", ctx.Err())
		case <-ticker.C:
		}
	}
	return nil
}

// Tick processes one mono input sample. Queued changes are applied first
// whenever a control interval has elapsed.
func (p *Processor) Tick(in float64) (outL, outR float64) {
	if p.untilControl == 0 {
		p.applyPending()
		p.untilControl = p.cfg.ControlInterval
	}
	p.untilControl--

	gain := p.gate.Tick()
	p.silent.Store(gain == 0 && p.gate.Target() == 0)

	outL, outR = p.fx.ProcessStereo(in, in)
	return gain * outL, gain * outR
}

// Process renders mono input into interleaved stereo output.
func (p *Processor) Process(in, out []float64) error {
	if len(out) < 2*len(in) {
		return fmt.Errorf("%w: %d input frames, %d output samples", ErrBufferSize, len(in), len(out))
	}

	for i, x := range in {
		out[2*i], out[2*i+1] = p.Tick(x)
	}
	return nil
}

func (p *Processor) applyPending() {
	p.pending = p.queue.Drain(p.pending[:0])
	for _, c := range p.pending {
		switch c.Param {
		case control.On:
			p.gate.Open()
		case control.Off:
			p.gate.Close()
		default:
			if err := control.Apply(p.fx, c); err != nil {
				p.rejected.Add(1)
				debug("rejected %s: %v", c, err)
			}
		}
	}
}
