package realtime

// GateRate is the default gate slope: full scale in 1000 frames.
const GateRate = 0.001

// Gate is a linear gain ramp applied to both output channels. It moves
// toward its target by a fixed step per frame and stops there.
type Gate struct {
	value  float64
	target float64
	rate   float64
}

// NewGate returns a gate resting at level with the given per-frame step.
// A non-positive rate makes every change immediate.
func NewGate(level, rate float64) *Gate {
	return &Gate{value: level, target: level, rate: rate}
}

// Open ramps toward unity.
func (g *Gate) Open() { g.target = 1 }

// Close ramps toward silence.
func (g *Gate) Close() { g.target = 0 }

// SetTarget ramps toward level.
func (g *Gate) SetTarget(level float64) { g.target = level }

// Target returns the level being ramped to.
func (g *Gate) Target() float64 { return g.target }

// Value returns the current gain.
func (g *Gate) Value() float64 { return g.value }

// Settled reports whether the ramp has reached its target.
func (g *Gate) Settled() bool { return g.value == g.target }

// Tick advances one frame and returns the new gain.
func (g *Gate) Tick() float64 {
	switch {
	case g.value == g.target:
	case g.rate <= 0:
		g.value = g.target
	case g.value < g.target:
		g.value += g.rate
		if g.value >= g.target {
			g.value = g.target
		}
	default:
		g.value -= g.rate
		if g.value <= g.target {
			g.value = g.target
		}
	}
	return g.value
}
