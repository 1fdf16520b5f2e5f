package realtime

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestLoopReader(t *testing.T) {
	p := newTestProcessor(t)
	ref := newTestProcessor(t)

	input := []float64{1, 0, 0, -0.5, 0}
	r, err := NewLoopReader(p, input)
	if err != nil {
		t.Fatal(err)
	}

	// 13 frames plus a partial one: the loop wraps twice.
	buf := make([]byte, 13*bytesPerFrame+3)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 13*bytesPerFrame {
		t.Fatalf("n = %d, want %d", n, 13*bytesPerFrame)
	}

	for i := 0; i < 13; i++ {
		l, rr := ref.Tick(input[i%len(input)])
		gotL := math.Float32frombits(binary.LittleEndian.Uint32(buf[8*i:]))
		gotR := math.Float32frombits(binary.LittleEndian.Uint32(buf[8*i+4:]))
		if gotL != float32(l) || gotR != float32(rr) {
			t.Fatalf("frame %d: got [%v %v] want [%v %v]", i, gotL, gotR, float32(l), float32(rr))
		}
	}

	// Position carries over between reads.
	if _, err := r.Read(buf[:bytesPerFrame]); err != nil {
		t.Fatal(err)
	}
	l, _ := ref.Tick(input[13%len(input)])
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf)); got != float32(l) {
		t.Fatalf("continued frame: got %v want %v", got, float32(l))
	}
}

func TestLoopReaderShortBuffer(t *testing.T) {
	r, err := NewLoopReader(newTestProcessor(t), []float64{1})
	if err != nil {
		t.Fatal(err)
	}
	if n, err := r.Read(make([]byte, bytesPerFrame-1)); n != 0 || err != nil {
		t.Fatalf("Read = %d, %v", n, err)
	}
}

func TestLoopReaderEmptyInput(t *testing.T) {
	if _, err := NewLoopReader(newTestProcessor(t), nil); !errors.Is(err, ErrEmptyLoop) {
		t.Fatalf("got %v want ErrEmptyLoop", err)
	}
}
