package buffer

import (
	"errors"
	"testing"
)

func TestNewFramesZeroFilled(t *testing.T) {
	f, err := NewFrames(8, 2)
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 8 || f.Channels() != 2 {
		t.Fatalf("Len/Channels = %d/%d, want 8/2", f.Len(), f.Channels())
	}
	if len(f.Samples()) != 16 {
		t.Fatalf("len(Samples) = %d, want 16", len(f.Samples()))
	}
	for i, v := range f.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewFramesValidation(t *testing.T) {
	if _, err := NewFrames(4, 0); !errors.Is(err, ErrInvalidChannels) {
		t.Fatalf("channels=0: got %v want ErrInvalidChannels", err)
	}
	f, err := NewFrames(-3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 for negative frames", f.Len())
	}
}

func TestFramesFromSlice(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	f, err := FramesFromSlice(data, 2)
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}
	if f.At(1, 0) != 3 || f.At(1, 1) != 4 {
		t.Fatalf("frame 1 = %v, want [3 4]", f.Frame(1))
	}

	f.Set(2, 1, 99)
	if data[5] != 99 {
		t.Fatal("FramesFromSlice should share underlying memory")
	}

	if _, err := FramesFromSlice(data[:5], 2); !errors.Is(err, ErrRaggedData) {
		t.Fatalf("ragged data: got %v want ErrRaggedData", err)
	}
}

func TestResizeZeroesNewFrames(t *testing.T) {
	f, err := NewFrames(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := range f.Samples() {
		f.Samples()[i] = 7
	}

	f.Resize(2)
	f.Resize(4)
	for i := 4; i < 8; i++ {
		if f.Samples()[i] != 0 {
			t.Fatalf("Samples()[%d] = %v after regrow, want 0", i, f.Samples()[i])
		}
	}

	f.Resize(10)
	if f.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", f.Len())
	}
	if f.At(0, 0) != 7 {
		t.Fatalf("Resize lost data: %v", f.At(0, 0))
	}
}

func TestCopyIsDeep(t *testing.T) {
	f, _ := FramesFromSlice([]float64{1, 2}, 1)
	c := f.Copy()
	c.Set(0, 0, 5)
	if f.At(0, 0) != 1 {
		t.Fatal("Copy shares memory with the source")
	}
	if c.Channels() != 1 {
		t.Fatalf("Copy channels = %d, want 1", c.Channels())
	}
}

func TestChannelExtract(t *testing.T) {
	f, _ := FramesFromSlice([]float64{1, -1, 2, -2, 3, -3}, 2)
	right := f.Channel(1, nil)
	want := []float64{-1, -2, -3}
	for i := range want {
		if right[i] != want[i] {
			t.Fatalf("right[%d] = %v, want %v", i, right[i], want[i])
		}
	}
}

func TestPoolReuse(t *testing.T) {
	p, err := NewPool(2)
	if err != nil {
		t.Fatal(err)
	}

	f := p.Get(16)
	if f.Len() != 16 || f.Channels() != 2 {
		t.Fatalf("Get: Len/Channels = %d/%d", f.Len(), f.Channels())
	}
	f.Set(3, 1, 1)
	p.Put(f)

	g := p.Get(8)
	for i, v := range g.Samples() {
		if v != 0 {
			t.Fatalf("pooled frames not zeroed at %d: %v", i, v)
		}
	}
	p.Put(nil)

	if _, err := NewPool(0); !errors.Is(err, ErrInvalidChannels) {
		t.Fatalf("NewPool(0): got %v", err)
	}
}
