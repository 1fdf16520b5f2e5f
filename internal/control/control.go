// Package control carries parameter changes from a host (a command line,
// a controller surface) to a running reverb.
//
// Changes are parsed from short text lines, queued from any goroutine and
// applied by the audio goroutine between samples.
package control

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/GeoffreyPlitt/debuggo"

	"github.com/cwbudde/algo-freeverb/dsp/effects/reverb"
)

var debug = debuggo.Debug("freeverb:control")

// Errors returned by Parse.
var (
	ErrSyntax       = errors.New("control: malformed change")
	ErrUnknownParam = errors.New("control: unknown parameter")
	ErrUnknownCC    = errors.New("control: unmapped controller number")
)

// Param names a reverb parameter.
type Param string

// Parameters understood by Apply. On and Off carry no value; they open and
// close the host's output gate and Apply rejects them.
const (
	Mix    Param = "mix"
	Room   Param = "room"
	Damp   Param = "damp"
	Width  Param = "width"
	Freeze Param = "freeze"
	Wet    Param = "wet"
	Dry    Param = "dry"
	Clear  Param = "clear"
	On     Param = "on"
	Off    Param = "off"
)

// ccScale maps 7-bit controller values into [0, 1).
const ccScale = 128.0

// controllers maps controller numbers to parameters.
var controllers = map[int]Param{
	22: Room,
	23: Damp,
	24: Width,
	25: Freeze,
	44: Mix,
}

// Change is one parameter update. Value is ignored for Clear, On and Off.
// For Freeze any value above 0.5 engages the freeze.
type Change struct {
	Param Param
	Value float64
}

func (c Change) String() string {
	switch c.Param {
	case Clear, On, Off:
		return string(c.Param)
	}
	return fmt.Sprintf("%s %g", c.Param, c.Value)
}

// Parse reads a change from a line such as "room 0.8", "freeze on",
// "clear", "off" or "cc 22 100".
func Parse(line string) (Change, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Change{}, fmt.Errorf("%w: empty line", ErrSyntax)
	}

	if fields[0] == "cc" {
		return parseCC(fields[1:])
	}

	p := Param(fields[0])
	switch p {
	case Clear, On, Off:
		if len(fields) != 1 {
			return Change{}, fmt.Errorf("%w: %q takes no value", ErrSyntax, line)
		}
		return Change{Param: p}, nil
	case Freeze:
		if len(fields) != 2 {
			return Change{}, fmt.Errorf("%w: %q", ErrSyntax, line)
		}
		on, err := parseSwitch(fields[1])
		if err != nil {
			return Change{}, err
		}
		return Change{Param: Freeze, Value: on}, nil
	case Mix, Room, Damp, Width, Wet, Dry:
		if len(fields) != 2 {
			return Change{}, fmt.Errorf("%w: %q", ErrSyntax, line)
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Change{}, fmt.Errorf("%w: %q: %v", ErrSyntax, line, err)
		}
		return Change{Param: p, Value: v}, nil
	}

	return Change{}, fmt.Errorf("%w: %q", ErrUnknownParam, fields[0])
}

func parseCC(fields []string) (Change, error) {
	if len(fields) != 2 {
		return Change{}, fmt.Errorf("%w: cc needs a number and a value", ErrSyntax)
	}

	num, err := strconv.Atoi(fields[0])
	if err != nil {
		return Change{}, fmt.Errorf("%w: controller %q", ErrSyntax, fields[0])
	}
	val, err := strconv.Atoi(fields[1])
	if err != nil || val < 0 || val > 127 {
		return Change{}, fmt.Errorf("%w: controller value %q", ErrSyntax, fields[1])
	}

	p, ok := controllers[num]
	if !ok {
		return Change{}, fmt.Errorf("%w: %d", ErrUnknownCC, num)
	}
	return Change{Param: p, Value: float64(val) / ccScale}, nil
}

func parseSwitch(s string) (float64, error) {
	switch s {
	case "on", "true", "1":
		return 1, nil
	case "off", "false", "0":
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: switch value %q", ErrSyntax, s)
	}
	return v, nil
}

// Apply performs c on fx.
func Apply(fx *reverb.FreeVerb, c Change) error {
	var err error
	switch c.Param {
	case Mix:
		err = fx.SetMix(c.Value)
	case Room:
		err = fx.SetRoomSize(c.Value)
	case Damp:
		err = fx.SetDamp(c.Value)
	case Width:
		err = fx.SetWidth(c.Value)
	case Wet:
		err = fx.SetWet(c.Value)
	case Dry:
		err = fx.SetDry(c.Value)
	case Freeze:
		fx.SetFrozen(c.Value > 0.5)
	case Clear:
		fx.Clear()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, c.Param)
	}
	if err != nil {
		return err
	}

	debug("applied %s", c)
	return nil
}
