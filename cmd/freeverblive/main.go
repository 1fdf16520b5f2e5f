// Command freeverblive runs Freeverb in real time.
//
// With the oto backend a mono loop (a file or a built-in click train) is
// played through the reverb on the default output device. With the jack
// backend (build with -tags jack) the reverb processes a JACK capture port.
//
// Parameter changes are read from stdin, one per line:
//
//	room 0.9
//	damp 0.1
//	freeze on
//	cc 44 100
//	off
//	on
//	clear
//	quit
//
// "off" and "on" ramp the output gate down and up. On quit, end of input
// or an interrupt the output fades to silence before the backend stops.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/GeoffreyPlitt/debuggo"

	"github.com/cwbudde/algo-freeverb/dsp/core"
	"github.com/cwbudde/algo-freeverb/internal/audiofile"
	"github.com/cwbudde/algo-freeverb/internal/control"
	"github.com/cwbudde/algo-freeverb/internal/realtime"
)

var debug = debuggo.Debug("freeverb:live")

// clickPeriod is the spacing of the built-in test clicks in seconds.
const clickPeriod = 1.5

func main() {
	var (
		backend  = flag.String("backend", "oto", "audio backend: oto|jack")
		rate     = flag.Int("s", 44100, "sample rate (oto only; jack uses the server rate)")
		inPath   = flag.String("in", "", "mono or stereo WAV/FLAC loop for the oto backend")
		name     = flag.String("name", "freeverb", "JACK client name")
		interval = flag.Int("interval", core.DefaultProcessorConfig().ControlInterval, "frames between control updates")
		latency  = flag.Duration("latency", 40*time.Millisecond, "oto buffer size")
	)
	flag.Parse()

	opts := []core.ProcessorOption{core.WithControlInterval(*interval)}

	var (
		proc    *realtime.Processor
		cleanup func() error
		err     error
	)
	switch strings.ToLower(*backend) {
	case "oto":
		proc, cleanup, err = startOto(*inPath, *rate, *latency, opts)
	case "jack":
		proc, cleanup, err = startJack(*name, opts)
	default:
		err = fmt.Errorf("invalid -backend %q (expected oto|jack)", *backend)
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("freeverb running at %.0f Hz; type changes, \"quit\" to stop\n", proc.Config().SampleRate)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	done := make(chan error, 1)
	go func() { done <- readControl(os.Stdin, proc) }()

	if err := waitForStop(done, sigs); err != nil {
		log.Print(err)
	}
	signal.Stop(sigs)

	ctx, cancel := context.WithTimeout(context.Background(), fadeTimeout(proc.Config()))
	err = proc.FadeOut(ctx)
	cancel()
	if err != nil {
		log.Print(err)
	}

	if err := cleanup(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("freeverb finished")
}

// waitForStop blocks until the control reader finishes or an interrupt
// arrives, and returns the reader's error.
func waitForStop(done <-chan error, sigs <-chan os.Signal) error {
	select {
	case err := <-done:
		return err
	case sig := <-sigs:
		debug("caught %v", sig)
		return nil
	}
}

// fadeTimeout bounds FadeOut: twice the gate ramp plus one control
// interval, with a floor for slow device buffers.
func fadeTimeout(cfg core.ProcessorConfig) time.Duration {
	frames := 1/realtime.GateRate + float64(cfg.ControlInterval)
	return 2*time.Duration(frames/cfg.SampleRate*float64(time.Second)) + 250*time.Millisecond
}

func startOto(inPath string, rate int, latency time.Duration, opts []core.ProcessorOption) (*realtime.Processor, func() error, error) {
	loop, sampleRate, err := loadLoop(inPath, rate)
	if err != nil {
		return nil, nil, err
	}

	proc, err := realtime.NewProcessor(append(opts, core.WithSampleRate(float64(sampleRate)))...)
	if err != nil {
		return nil, nil, err
	}
	src, err := realtime.NewLoopReader(proc, loop)
	if err != nil {
		return nil, nil, err
	}

	player, err := realtime.NewOtoPlayer(sampleRate, src, latency)
	if err != nil {
		return nil, nil, err
	}
	player.Start()

	return proc, player.Close, nil
}

func startJack(name string, opts []core.ProcessorOption) (*realtime.Processor, func() error, error) {
	jc, err := realtime.NewJackClient(name, opts...)
	if err != nil {
		return nil, nil, err
	}
	if err := jc.Start(); err != nil {
		_ = jc.Close()
		return nil, nil, err
	}

	return jc.Processor(), jc.Close, nil
}

// loadLoop returns the mono loop to play and its sample rate. Without a
// file it generates a click every clickPeriod seconds at rate.
func loadLoop(path string, rate int) ([]float64, int, error) {
	if rate <= 0 {
		return nil, 0, fmt.Errorf("invalid -s %d: sample rate must be positive", rate)
	}
	if path == "" {
		loop := make([]float64, int(clickPeriod*float64(rate)))
		loop[0] = 1
		return loop, rate, nil
	}

	a, err := audiofile.Read(path)
	if err != nil {
		return nil, 0, err
	}
	if a.Frames.Len() == 0 {
		return nil, 0, realtime.ErrEmptyLoop
	}

	return downmix(a), a.SampleRate, nil
}

func downmix(a *audiofile.Audio) []float64 {
	channels := a.Frames.Channels()
	mono := make([]float64, a.Frames.Len())
	for i := range mono {
		var sum float64
		for _, v := range a.Frames.Frame(i) {
			sum += v
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}

// readControl forwards parsed lines to proc until EOF or "quit".
func readControl(r io.Reader, proc *realtime.Processor) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		c, err := control.Parse(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		debug("queue %s", c)
		proc.Push(c)
	}
	return sc.Err()
}
