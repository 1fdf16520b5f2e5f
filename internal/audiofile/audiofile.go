// Package audiofile loads WAV and FLAC files into interleaved float frames
// and writes processed frames back as PCM WAV.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/GeoffreyPlitt/debuggo"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"

	"github.com/cwbudde/algo-freeverb/dsp/buffer"
	"github.com/cwbudde/algo-freeverb/dsp/dither"
)

var debug = debuggo.Debug("freeverb:audiofile")

// Errors returned by Read and WriteWAV.
var (
	ErrUnsupportedFormat   = errors.New("audiofile: unsupported file format")
	ErrUnsupportedBitDepth = errors.New("audiofile: unsupported bit depth")
	ErrInvalidFile         = errors.New("audiofile: invalid file")
)

// Audio is a decoded file.
type Audio struct {
	Frames     *buffer.Frames
	SampleRate int
	BitDepth   int
}

// Duration returns the length in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate <= 0 || a.Frames == nil {
		return 0
	}
	return float64(a.Frames.Len()) / float64(a.SampleRate)
}

// Read decodes a .wav or .flac file into samples normalized to [-1, 1).
func Read(path string) (*Audio, error) {
	var (
		a   *Audio
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		a, err = readWAV(path)
	case ".flac":
		a, err = readFLAC(path)
	default:
		return nil, fmt.Errorf("%w: %q (supported: .wav, .flac)", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	debug("read %s: %d Hz, %d ch, %d bit, %d frames",
		path, a.SampleRate, a.Frames.Channels(), a.BitDepth, a.Frames.Len())
	return a, nil
}

func readWAV(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a WAV file", ErrInvalidFile, path)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode %s: %w", path, err)
	}

	bits := int(dec.BitDepth)
	scale, err := fullScale(bits)
	if err != nil {
		return nil, err
	}

	samples := make([]float64, len(pcm.Data))
	for i, s := range pcm.Data {
		samples[i] = float64(s) / scale
	}

	frames, err := buffer.FramesFromSlice(samples, pcm.Format.NumChannels)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFile, path, err)
	}

	return &Audio{Frames: frames, SampleRate: pcm.Format.SampleRate, BitDepth: bits}, nil
}

func readFLAC(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFile, path, err)
	}
	defer stream.Close()

	info := stream.Info
	if info == nil {
		return nil, fmt.Errorf("%w: %s has no stream info", ErrInvalidFile, path)
	}

	channels := int(info.NChannels)
	bits := int(info.BitsPerSample)
	scale, err := fullScale(bits)
	if err != nil {
		return nil, err
	}

	samples := make([]float64, 0, int(info.NSamples)*channels)
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("audiofile: decode %s: %w", path, err)
		}

		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				samples = append(samples, float64(frame.Subframes[ch].Samples[i])/scale)
			}
		}
	}

	frames, err := buffer.FramesFromSlice(samples, channels)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFile, path, err)
	}

	return &Audio{Frames: frames, SampleRate: int(info.SampleRate), BitDepth: bits}, nil
}

// WriteWAV writes a as integer PCM with the given bit depth (16, 24 or 32).
// Samples outside [-1, 1) are clipped. Without options samples are rounded
// to the nearest code; pass dither options to add noise or shaping. Each
// channel gets its own quantizer.
func WriteWAV(path string, a *Audio, bitDepth int, opts ...dither.Option) (err error) {
	if a == nil || a.Frames == nil {
		return fmt.Errorf("%w: no frames", ErrInvalidFile)
	}
	if _, err := fullScale(bitDepth); err != nil {
		return err
	}

	qopts := make([]dither.Option, 0, len(opts)+3)
	qopts = append(qopts, dither.WithDitherType(dither.DitherNone))
	qopts = append(qopts, opts...)
	qopts = append(qopts, dither.WithBitDepth(bitDepth), dither.WithLimit(true))

	channels := a.Frames.Channels()
	quantizers := make([]*dither.Quantizer, channels)
	for ch := range quantizers {
		q, err := dither.NewQuantizer(qopts...)
		if err != nil {
			return err
		}
		quantizers[ch] = q
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := wav.NewEncoder(f, a.SampleRate, bitDepth, channels, 1)

	src := a.Frames.Samples()
	data := make([]int, len(src))
	for i, v := range src {
		data[i] = quantizers[i%channels].ProcessInteger(v)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  a.SampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audiofile: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: finish %s: %w", path, err)
	}

	debug("wrote %s: %d Hz, %d ch, %d bit, %d frames, dither %s",
		path, a.SampleRate, channels, bitDepth, a.Frames.Len(), quantizers[0].DitherType())
	return nil
}

// fullScale returns 2^(bits-1).
func fullScale(bits int) (float64, error) {
	switch bits {
	case 16, 24, 32:
		return math.Ldexp(1, bits-1), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
}
