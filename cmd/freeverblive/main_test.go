package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cwbudde/algo-freeverb/dsp/buffer"
	"github.com/cwbudde/algo-freeverb/dsp/core"
	"github.com/cwbudde/algo-freeverb/internal/audiofile"
	"github.com/cwbudde/algo-freeverb/internal/realtime"
)

func TestReadControlQueuesChanges(t *testing.T) {
	proc, err := realtime.NewProcessor()
	if err != nil {
		t.Fatal(err)
	}

	in := "room 0.5\n\nbogus 1\nfreeze on\noff\nquit\nwidth 0\n"
	if err := readControl(strings.NewReader(in), proc); err != nil {
		t.Fatal(err)
	}

	proc.Tick(0)
	fx := proc.Reverb()
	if !fx.Frozen() {
		t.Error("freeze not applied")
	}
	if d := fx.RoomSize() - 0.5; d > 1e-12 || d < -1e-12 {
		t.Errorf("room = %v", fx.RoomSize())
	}
	if fx.Width() != 1 {
		t.Errorf("line after quit was applied: width %v", fx.Width())
	}
	if l, _ := proc.Tick(0.5); l == 0 {
		t.Error("gate closed at once instead of ramping")
	}
}

func TestLoadLoopRejectsBadRate(t *testing.T) {
	for _, rate := range []int{0, -44100} {
		if _, _, err := loadLoop("", rate); err == nil {
			t.Errorf("rate %d accepted", rate)
		}
	}
}

func TestWaitForStop(t *testing.T) {
	sigs := make(chan os.Signal, 1)
	sigs <- os.Interrupt
	if err := waitForStop(make(chan error), sigs); err != nil {
		t.Fatalf("interrupt: got %v", err)
	}

	done := make(chan error, 1)
	want := errors.New("read failed")
	done <- want
	if err := waitForStop(done, make(chan os.Signal)); !errors.Is(err, want) {
		t.Fatalf("reader error: got %v", err)
	}
}

func TestFadeTimeoutCoversRamp(t *testing.T) {
	cfg := core.DefaultProcessorConfig()
	got := fadeTimeout(cfg)

	ramp := time.Duration(1000 / cfg.SampleRate * float64(time.Second))
	if got < 2*ramp || got > time.Second {
		t.Fatalf("fadeTimeout = %v, ramp %v", got, ramp)
	}

	cfg.SampleRate = 8000
	if slow := fadeTimeout(cfg); slow <= got {
		t.Fatalf("8 kHz timeout %v not longer than %v", slow, got)
	}
}

func TestLoadLoopClickTrain(t *testing.T) {
	loop, rate, err := loadLoop("", 1000)
	if err != nil {
		t.Fatal(err)
	}
	if rate != 1000 || len(loop) != 1500 || loop[0] != 1 || loop[1] != 0 {
		t.Fatalf("rate %d, len %d, head %v", rate, len(loop), loop[:2])
	}
}

func TestLoadLoopDownmixesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.wav")
	frames, _ := buffer.FramesFromSlice([]float64{0.5, 0.25, -0.5, 0}, 2)
	if err := audiofile.WriteWAV(path, &audiofile.Audio{Frames: frames, SampleRate: 8000}, 16); err != nil {
		t.Fatal(err)
	}

	loop, rate, err := loadLoop(path, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if rate != 8000 || len(loop) != 2 || loop[0] != 0.375 || loop[1] != -0.25 {
		t.Fatalf("rate %d, loop %v", rate, loop)
	}
}
