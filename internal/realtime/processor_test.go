package realtime

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cwbudde/algo-freeverb/dsp/core"
	"github.com/cwbudde/algo-freeverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-freeverb/internal/control"
	"github.com/cwbudde/algo-freeverb/internal/testutil"
)

func newTestProcessor(t *testing.T, opts ...core.ProcessorOption) *Processor {
	t.Helper()

	p, err := NewProcessor(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewProcessorConfig(t *testing.T) {
	p := newTestProcessor(t, core.WithSampleRate(48000), core.WithControlInterval(16))

	cfg := p.Config()
	if cfg.SampleRate != 48000 || cfg.ControlInterval != 16 {
		t.Fatalf("config = %+v", cfg)
	}
	if p.Reverb().SampleRate() != 48000 {
		t.Fatalf("reverb rate = %v", p.Reverb().SampleRate())
	}
}

func TestChangesLandOnControlBoundaries(t *testing.T) {
	const interval = 4

	p := newTestProcessor(t, core.WithControlInterval(interval))
	ref, err := reverb.NewFreeVerb(44100)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicNoise(1, 0.5, 12)

	// Queued before the first frame: applied at frame 0.
	p.Push(control.Change{Param: control.Room, Value: 0.2})
	// Queued after frame 0: waits for frame 4.
	late := control.Change{Param: control.Width, Value: 0}

	for i, x := range in {
		switch i {
		case 0:
			_ = ref.SetRoomSize(0.2)
		case interval:
			_ = ref.SetWidth(0)
		}
		wantL, wantR := ref.ProcessStereo(x, x)

		gotL, gotR := p.Tick(x)
		if gotL != wantL || gotR != wantR {
			t.Fatalf("frame %d: got [%v %v] want [%v %v]", i, gotL, gotR, wantL, wantR)
		}

		if i == 0 {
			p.Push(late)
		}
	}
}

func TestProcessInterleaves(t *testing.T) {
	p := newTestProcessor(t)
	ref := newTestProcessor(t)

	in := testutil.DeterministicSine(220, 44100, 0.5, 300)
	out := make([]float64, 2*len(in))
	if err := p.Process(in, out); err != nil {
		t.Fatal(err)
	}

	for i, x := range in {
		l, r := ref.Tick(x)
		if out[2*i] != l || out[2*i+1] != r {
			t.Fatalf("frame %d: got [%v %v] want [%v %v]", i, out[2*i], out[2*i+1], l, r)
		}
	}

	if err := p.Process(in, out[:len(out)-1]); !errors.Is(err, ErrBufferSize) {
		t.Fatalf("short output: got %v", err)
	}
}

func TestRejectedChangesAreCounted(t *testing.T) {
	p := newTestProcessor(t, core.WithControlInterval(1))

	p.Push(control.Change{Param: control.Room, Value: 3})
	p.Push(control.Change{Param: control.Damp, Value: 0.5})
	p.Tick(0)

	if p.Rejected() != 1 {
		t.Fatalf("Rejected = %d, want 1", p.Rejected())
	}
	if d := p.Reverb().Damp(); d < 0.4999 || d > 0.5001 {
		t.Fatalf("valid change after a rejected one not applied: damp %v", d)
	}
}

func TestOffRampsOutputToSilence(t *testing.T) {
	p := newTestProcessor(t, core.WithControlInterval(1))
	ref, err := reverb.NewFreeVerb(44100)
	if err != nil {
		t.Fatal(err)
	}
	gate := NewGate(1, GateRate)

	in := testutil.DeterministicNoise(3, 0.5, 1200)
	for i, x := range in {
		if i == 100 {
			p.Push(control.Change{Param: control.Off})
			gate.Close()
		}

		g := gate.Tick()
		wantL, wantR := ref.ProcessStereo(x, x)
		gotL, gotR := p.Tick(x)
		if gotL != g*wantL || gotR != g*wantR {
			t.Fatalf("frame %d: got [%v %v] want gain %v x [%v %v]", i, gotL, gotR, g, wantL, wantR)
		}
	}

	if !p.Silent() {
		t.Fatal("gate not closed after the ramp")
	}
}

func TestGateRampTakesAThousandFrames(t *testing.T) {
	p := newTestProcessor(t, core.WithControlInterval(1))
	p.Push(control.Change{Param: control.Off})

	frames := 0
	for !p.Silent() && frames < 2000 {
		p.Tick(0.1)
		frames++
	}
	if frames < 999 || frames > 1001 {
		t.Fatalf("gate closed after %d frames, want about 1000", frames)
	}

	l, r := p.Tick(0.5)
	if l != 0 || r != 0 {
		t.Fatalf("closed gate passed [%v %v]", l, r)
	}

	p.Push(control.Change{Param: control.On})
	p.Tick(0.5)
	if p.Silent() {
		t.Fatal("still silent after on")
	}
	if g := p.gate.Value(); g != GateRate {
		t.Fatalf("gain one frame after on = %v, want %v", g, GateRate)
	}
}

func TestGateChangesWaitForControlBoundary(t *testing.T) {
	p := newTestProcessor(t, core.WithControlInterval(64))
	p.Tick(0)
	p.Push(control.Change{Param: control.Off})

	for i := 1; i < 64; i++ {
		p.Tick(0)
		if p.gate.Value() != 1 {
			t.Fatalf("frame %d: gate moved before the control boundary", i)
		}
	}
	p.Tick(0)
	if g := p.gate.Value(); g != 1-GateRate {
		t.Fatalf("gain at boundary = %v, want %v", g, 1-GateRate)
	}
}

func TestFadeOutWaitsForAudioGoroutine(t *testing.T) {
	p := newTestProcessor(t, core.WithControlInterval(8))

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		buf := make([]float64, 128)
		out := make([]float64, 256)
		for {
			select {
			case <-stop:
				return
			default:
			}
			_ = p.Process(buf, out)
			_ = p.Rejected()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := p.FadeOut(ctx)
	close(stop)
	wg.Wait()

	if err != nil {
		t.Fatal(err)
	}
	if !p.Silent() {
		t.Fatal("FadeOut returned before the gate closed")
	}
}

func TestFadeOutHonorsContext(t *testing.T) {
	p := newTestProcessor(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.FadeOut(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("no audio running: got %v", err)
	}
}

func TestRejectedIsSafeAcrossGoroutines(t *testing.T) {
	p := newTestProcessor(t, core.WithControlInterval(1))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			p.Push(control.Change{Param: control.Room, Value: 2})
			p.Tick(0)
		}
	}()
	for range 50 {
		_ = p.Rejected()
	}
	wg.Wait()

	if got := p.Rejected(); got != 50 {
		t.Fatalf("Rejected = %d, want 50", got)
	}
}
