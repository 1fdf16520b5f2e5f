package realtime

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer plays an interleaved float32 stereo stream on the default
// output device.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player

	mu      sync.Mutex
	started bool
}

// NewOtoPlayer opens the audio device. Only one oto context may exist per
// process.
func NewOtoPlayer(sampleRate int, src io.Reader, bufferSize time.Duration) (*OtoPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("realtime: open audio device: %w", err)
	}
	<-ready

	debug("oto context ready: %d Hz, buffer %v", sampleRate, bufferSize)

	return &OtoPlayer{ctx: ctx, player: ctx.NewPlayer(src)}, nil
}

// Start begins playback.
func (op *OtoPlayer) Start() {
	op.mu.Lock()
	defer op.mu.Unlock()

	if !op.started {
		op.player.Play()
		op.started = true
	}
}

// IsPlaying reports whether the device is consuming the stream.
func (op *OtoPlayer) IsPlaying() bool {
	return op.player.IsPlaying()
}

// Close stops playback and releases the player.
func (op *OtoPlayer) Close() error {
	op.mu.Lock()
	defer op.mu.Unlock()

	op.started = false
	if err := op.player.Close(); err != nil {
		return fmt.Errorf("realtime: close player: %w", err)
	}
	return nil
}
