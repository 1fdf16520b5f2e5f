package reverb

import (
	"fmt"

	"github.com/cwbudde/algo-freeverb/dsp/core"
)

// Mode is the engine state selected by SetFrozen.
type Mode int

const (
	// ModeNormal is regular reverberation with decaying tails.
	ModeNormal Mode = iota
	// ModeFrozen holds the current tail indefinitely and ignores new input.
	ModeFrozen
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeFrozen:
		return "frozen"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Coefficients is a snapshot of the derived values the filters run with.
type Coefficients struct {
	Feedback float64 // comb feedback (room size)
	Damp     float64 // one-pole damping
	Gain     float64 // input gain
	Wet1     float64 // same-channel wet weight
	Wet2     float64 // cross-channel wet weight
	Dry      float64 // dry weight
}

// SetMix sets the wet/dry balance: 0 is fully dry, 1 fully wet.
func (r *FreeVerb) SetMix(mix float64) error {
	if err := checkUnit("mix", mix); err != nil {
		return err
	}
	r.wetLevel = mix
	r.dryLevel = 1 - mix
	r.update()
	return nil
}

// SetWet sets the wet level independently of the dry level.
func (r *FreeVerb) SetWet(v float64) error {
	if err := checkUnit("wet", v); err != nil {
		return err
	}
	r.wetLevel = v
	r.update()
	return nil
}

// SetDry sets the dry level independently of the wet level.
func (r *FreeVerb) SetDry(v float64) error {
	if err := checkUnit("dry", v); err != nil {
		return err
	}
	r.dryLevel = v
	r.update()
	return nil
}

// SetRoomSize sets the room size, which maps to comb feedback in
// [0.7, 0.98].
func (r *FreeVerb) SetRoomSize(v float64) error {
	if err := checkUnit("room size", v); err != nil {
		return err
	}
	r.roomSizeMem = v*scaleRoom + offsetRoom
	r.update()
	return nil
}

// SetDamp sets high-frequency damping, which maps to a one-pole pole in
// [0, 0.4].
func (r *FreeVerb) SetDamp(v float64) error {
	if err := checkUnit("damp", v); err != nil {
		return err
	}
	r.dampMem = v * scaleDamp
	r.update()
	return nil
}

// SetWidth sets stereo width: 0 collapses the tail to mono, 1 keeps the
// channels fully separate.
func (r *FreeVerb) SetWidth(v float64) error {
	if err := checkUnit("width", v); err != nil {
		return err
	}
	r.width = v
	r.update()
	return nil
}

// SetFrozen switches between ModeNormal and ModeFrozen. Room size and damping
// set while frozen are stored and apply once the engine is unfrozen.
func (r *FreeVerb) SetFrozen(frozen bool) {
	r.frozen = frozen
	r.update()
}

// RoomSize returns the normalised room size.
func (r *FreeVerb) RoomSize() float64 {
	return (r.roomSizeMem - offsetRoom) / scaleRoom
}

// Damp returns the normalised damping.
func (r *FreeVerb) Damp() float64 {
	return r.dampMem / scaleDamp
}

// Width returns the stereo width.
func (r *FreeVerb) Width() float64 { return r.width }

// Mix returns the wet level, which equals the mix set by SetMix.
func (r *FreeVerb) Mix() float64 { return r.wetLevel }

// Wet returns the wet level.
func (r *FreeVerb) Wet() float64 { return r.wetLevel }

// Dry returns the dry level.
func (r *FreeVerb) Dry() float64 { return r.dryLevel }

// Frozen reports whether freeze mode is active.
func (r *FreeVerb) Frozen() bool { return r.frozen }

// Mode returns the current engine mode.
func (r *FreeVerb) Mode() Mode {
	if r.frozen {
		return ModeFrozen
	}
	return ModeNormal
}

// Coefficients returns the derived coefficients currently in use.
func (r *FreeVerb) Coefficients() Coefficients {
	return Coefficients{
		Feedback: r.roomSize,
		Damp:     r.damp,
		Gain:     r.gain,
		Wet1:     r.wet1,
		Wet2:     r.wet2,
		Dry:      r.dry,
	}
}

// update recomputes every derived coefficient from the user-facing values.
func (r *FreeVerb) update() {
	wet := scaleWet * r.wetLevel
	r.wet1 = wet * (r.width/2 + 0.5)
	r.wet2 = wet * (1 - r.width) / 2
	r.dry = scaleDry * r.dryLevel

	if r.frozen {
		r.roomSize = 1
		r.damp = 0
		r.gain = 0
	} else {
		r.roomSize = r.roomSizeMem
		r.damp = r.dampMem
		r.gain = fixedGain
	}

	r.combL.setDamp(r.damp)
	r.combR.setDamp(r.damp)
}

func checkUnit(name string, v float64) error {
	if !core.InUnitRange(v) {
		return fmt.Errorf("%w: %s must be in [0,1]: %f", ErrInvalidParameter, name, v)
	}
	return nil
}
