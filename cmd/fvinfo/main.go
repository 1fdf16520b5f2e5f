// Command fvinfo prints impulse-response metrics of the Freeverb
// reverberator over a grid of settings.
//
// Usage:
//
//	fvinfo [flags]
//
// Examples:
//
//	fvinfo
//	fvinfo -room 0.2,0.5,0.9 -damp 0.25
//	fvinfo -s 48000 -len 6 -width 0,1
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-freeverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-freeverb/measure/tail"
)

type point struct {
	room, damp, width float64
}

func main() {
	rate := flag.Float64("s", 44100, "sample rate in Hz")
	length := flag.Float64("len", 4, "rendered tail length in seconds")
	mix := flag.Float64("mix", 1, "wet/dry mix used for the measurement")
	rooms := flag.String("room", "0.25,0.5,0.75,1", "comma-separated room sizes")
	damps := flag.String("damp", "0,0.5,1", "comma-separated damping values")
	widths := flag.String("width", "1", "comma-separated stereo widths")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fvinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders the Freeverb impulse response for every combination of\n")
		fmt.Fprintf(os.Stderr, "room, damp and width and prints its decay and stereo metrics.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	grid, err := buildGrid(*rooms, *damps, *widths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if err := printAnalysis(os.Stdout, grid, *rate, *length, *mix); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseList(flagName, s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("-%s: %w", flagName, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("-%s: no values", flagName)
	}
	return out, nil
}

func buildGrid(rooms, damps, widths string) ([]point, error) {
	r, err := parseList("room", rooms)
	if err != nil {
		return nil, err
	}
	d, err := parseList("damp", damps)
	if err != nil {
		return nil, err
	}
	w, err := parseList("width", widths)
	if err != nil {
		return nil, err
	}

	grid := make([]point, 0, len(r)*len(d)*len(w))
	for _, room := range r {
		for _, damp := range d {
			for _, width := range w {
				grid = append(grid, point{room, damp, width})
			}
		}
	}
	return grid, nil
}

func measure(p point, sampleRate, seconds, mix float64) (tail.Metrics, error) {
	fx, err := reverb.NewFreeVerb(sampleRate)
	if err != nil {
		return tail.Metrics{}, err
	}
	for _, set := range []func() error{
		func() error { return fx.SetMix(mix) },
		func() error { return fx.SetRoomSize(p.room) },
		func() error { return fx.SetDamp(p.damp) },
		func() error { return fx.SetWidth(p.width) },
	} {
		if err := set(); err != nil {
			return tail.Metrics{}, err
		}
	}

	resp, err := tail.Render(fx, int(seconds*sampleRate))
	if err != nil {
		return tail.Metrics{}, err
	}
	return tail.Analyze(resp, sampleRate)
}

func printAnalysis(w io.Writer, grid []point, sampleRate, seconds, mix float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Room\tDamp\tWidth\tRT60 [s]\tEDT [s]\tCentroid [Hz]\tL/R Corr\tPeak\n")
	fmt.Fprintf(tw, "----\t----\t-----\t--------\t-------\t-------------\t--------\t----\n")

	for _, p := range grid {
		m, err := measure(p, sampleRate, seconds, mix)
		if err != nil {
			return fmt.Errorf("room=%g damp=%g width=%g: %w", p.room, p.damp, p.width, err)
		}

		fmt.Fprintf(tw, "%.2f\t%.2f\t%.2f\t%s\t%s\t%.0f\t%.3f\t%.4f\n",
			p.room, p.damp, p.width,
			formatSeconds(m.RT60), formatSeconds(m.EDT),
			m.CentroidL, m.Correlation, m.PeakLeft,
		)
	}
	return tw.Flush()
}

// formatSeconds prints 0, which tail uses for "not measurable", as a dash.
func formatSeconds(v float64) string {
	if v <= 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
