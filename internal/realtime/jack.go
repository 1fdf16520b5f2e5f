//go:build jack

package realtime

import (
	"fmt"

	"github.com/xthexder/go-jack"

	"github.com/cwbudde/algo-freeverb/dsp/core"
)

// JackClient connects a Processor to a JACK server: one capture port, two
// playback ports.
type JackClient struct {
	client *jack.Client
	proc   *Processor
	in     *jack.Port
	outL   *jack.Port
	outR   *jack.Port
}

// NewJackClient registers a client named name. The processor runs at the
// server's sample rate.
func NewJackClient(name string, opts ...core.ProcessorOption) (*JackClient, error) {
	client, status := jack.ClientOpen(name, jack.NoStartServer)
	if client == nil {
		return nil, fmt.Errorf("realtime: open JACK client: %w", jack.StrError(status))
	}

	rate := float64(client.GetSampleRate())
	proc, err := NewProcessor(append(opts, core.WithSampleRate(rate))...)
	if err != nil {
		client.Close()
		return nil, err
	}

	jc := &JackClient{client: client, proc: proc}

	jc.in = client.PortRegister("in", jack.DEFAULT_AUDIO_TYPE, jack.PortIsInput, 0)
	jc.outL = client.PortRegister("out_left", jack.DEFAULT_AUDIO_TYPE, jack.PortIsOutput, 0)
	jc.outR = client.PortRegister("out_right", jack.DEFAULT_AUDIO_TYPE, jack.PortIsOutput, 0)
	if jc.in == nil || jc.outL == nil || jc.outR == nil {
		client.Close()
		return nil, fmt.Errorf("realtime: register JACK ports for %s", name)
	}

	if code := client.SetProcessCallback(jc.process); code != 0 {
		client.Close()
		return nil, fmt.Errorf("realtime: set JACK callback: %w", jack.StrError(code))
	}

	debug("jack client %s: %.0f Hz, buffer %d", name, rate, client.GetBufferSize())
	return jc, nil
}

// Processor returns the processor fed by the capture port.
func (jc *JackClient) Processor() *Processor { return jc.proc }

// Start activates the client.
func (jc *JackClient) Start() error {
	if code := jc.client.Activate(); code != 0 {
		return fmt.Errorf("realtime: activate JACK client: %w", jack.StrError(code))
	}
	return nil
}

// Close disconnects from the server. Closing an active client also
// deactivates it, so there is no separate Stop.
func (jc *JackClient) Close() error {
	if code := jc.client.Close(); code != 0 {
		return fmt.Errorf("realtime: close JACK client: %w", jack.StrError(code))
	}
	return nil
}

func (jc *JackClient) process(nframes uint32) int {
	in := jc.in.GetBuffer(nframes)
	outL := jc.outL.GetBuffer(nframes)
	outR := jc.outR.GetBuffer(nframes)

	for i, x := range in {
		l, r := jc.proc.Tick(float64(x))
		outL[i] = jack.AudioSample(l)
		outR[i] = jack.AudioSample(r)
	}
	return 0
}
