package audiofile

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-freeverb/dsp/buffer"
	"github.com/cwbudde/algo-freeverb/dsp/dither"
	"github.com/cwbudde/algo-freeverb/internal/testutil"
)

func TestWAVRoundTrip(t *testing.T) {
	left := testutil.DeterministicSine(440, 44100, 0.8, 2048)
	right := testutil.DeterministicNoise(1, 0.5, 2048)
	frames, err := buffer.FramesFromSlice(testutil.Interleave(left, right), 2)
	if err != nil {
		t.Fatal(err)
	}

	for _, bits := range []int{16, 24, 32} {
		path := filepath.Join(t.TempDir(), "out.wav")
		in := &Audio{Frames: frames, SampleRate: 44100, BitDepth: bits}

		if err := WriteWAV(path, in, bits); err != nil {
			t.Fatalf("%d bit: write: %v", bits, err)
		}

		got, err := Read(path)
		if err != nil {
			t.Fatalf("%d bit: read: %v", bits, err)
		}
		if got.SampleRate != 44100 || got.BitDepth != bits {
			t.Fatalf("%d bit: got %d Hz / %d bit", bits, got.SampleRate, got.BitDepth)
		}
		if got.Frames.Channels() != 2 || got.Frames.Len() != 2048 {
			t.Fatalf("%d bit: got %d ch, %d frames", bits, got.Frames.Channels(), got.Frames.Len())
		}

		tol := 1 / math.Ldexp(1, bits-1)
		testutil.RequireSliceNearlyEqual(t, got.Frames.Samples(), frames.Samples(), tol)
	}
}

func TestWriteWAVClips(t *testing.T) {
	frames, _ := buffer.FramesFromSlice([]float64{2, -2, 0.5}, 1)
	path := filepath.Join(t.TempDir(), "clip.wav")

	if err := WriteWAV(path, &Audio{Frames: frames, SampleRate: 8000}, 16); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}

	s := got.Frames.Samples()
	if s[0] != 32767.0/32768 || s[1] != -1 || s[2] != 0.5 {
		t.Fatalf("clipped samples = %v", s)
	}
}

func TestWriteWAVDither(t *testing.T) {
	left := testutil.DeterministicSine(1000, 44100, 0.3, 1024)
	right := testutil.DeterministicNoise(7, 0.2, 1024)
	frames, _ := buffer.FramesFromSlice(testutil.Interleave(left, right), 2)
	a := &Audio{Frames: frames, SampleRate: 44100}
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.wav")
	none := filepath.Join(dir, "none.wav")
	tpdf := filepath.Join(dir, "tpdf.wav")
	if err := WriteWAV(plain, a, 16); err != nil {
		t.Fatal(err)
	}
	// The bit depth argument wins over a conflicting option.
	if err := WriteWAV(none, a, 16, dither.WithDitherType(dither.DitherNone), dither.WithBitDepth(8)); err != nil {
		t.Fatal(err)
	}
	if err := WriteWAV(tpdf, a, 16,
		dither.WithDitherType(dither.DitherTriangular),
		dither.WithRNG(rand.New(rand.NewPCG(5, 6))),
	); err != nil {
		t.Fatal(err)
	}

	p, _ := os.ReadFile(plain)
	n, _ := os.ReadFile(none)
	if !bytes.Equal(p, n) {
		t.Fatal("explicit DitherNone differs from the default output")
	}

	got, err := Read(tpdf)
	if err != nil {
		t.Fatal(err)
	}
	if got.BitDepth != 16 {
		t.Fatalf("BitDepth = %d", got.BitDepth)
	}
	testutil.RequireSliceNearlyEqual(t, got.Frames.Samples(), frames.Samples(), 1.5/32768+1e-12)

	rounded, _ := Read(plain)
	if d, _ := testutil.MaxAbsDiff(got.Frames.Samples(), rounded.Frames.Samples()); d == 0 {
		t.Fatal("triangular dither left every sample unchanged")
	}

	if err := WriteWAV(filepath.Join(dir, "bad.wav"), a, 16, dither.WithDitherAmplitude(-1)); !errors.Is(err, dither.ErrInvalidAmplitude) {
		t.Fatalf("bad amplitude: got %v", err)
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Read(filepath.Join(dir, "x.mp3")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("mp3: got %v", err)
	}
	if _, err := Read(filepath.Join(dir, "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: got %v", err)
	}

	junk := []byte("this is not audio at all, just some bytes")
	for _, name := range []string{"junk.wav", "junk.flac"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, junk, 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := Read(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestWriteWAVErrors(t *testing.T) {
	frames, _ := buffer.NewFrames(4, 1)
	path := filepath.Join(t.TempDir(), "x.wav")

	if err := WriteWAV(path, &Audio{Frames: frames, SampleRate: 8000}, 12); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("12 bit: got %v", err)
	}
	if err := WriteWAV(path, nil, 16); !errors.Is(err, ErrInvalidFile) {
		t.Errorf("nil audio: got %v", err)
	}
}

func TestDuration(t *testing.T) {
	frames, _ := buffer.NewFrames(22050, 2)
	a := &Audio{Frames: frames, SampleRate: 44100}
	if d := a.Duration(); d != 0.5 {
		t.Fatalf("Duration = %v, want 0.5", d)
	}
	if d := (&Audio{}).Duration(); d != 0 {
		t.Fatalf("empty Duration = %v", d)
	}
}
