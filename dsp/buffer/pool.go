package buffer

import "sync"

// Pool provides sync.Pool-based Frames reuse for a fixed channel count to
// reduce GC pressure in realtime processing loops.
type Pool struct {
	channels int
	pool     sync.Pool
}

// NewPool returns a Pool handing out frames with the given channel count.
func NewPool(channels int) (*Pool, error) {
	if channels < 1 {
		return nil, ErrInvalidChannels
	}
	p := &Pool{channels: channels}
	p.pool.New = func() any {
		return &Frames{channels: channels}
	}
	return p, nil
}

// Get returns zeroed frames with the requested length.
// Callers must return them via Put when done.
func (p *Pool) Get(frames int) *Frames {
	f := p.pool.Get().(*Frames)
	f.Resize(frames)
	f.Zero()
	return f
}

// Put returns frames to the pool. Frames with a different channel count are
// dropped. The caller must not use f after calling Put.
func (p *Pool) Put(f *Frames) {
	if f == nil || f.channels != p.channels {
		return
	}
	p.pool.Put(f)
}
