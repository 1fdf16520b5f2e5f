package dither_test

import (
	"fmt"

	"github.com/cwbudde/algo-freeverb/dsp/dither"
)

func ExampleQuantizer_ProcessTo() {
	q, err := dither.NewQuantizer(
		dither.WithBitDepth(16),
		dither.WithDitherType(dither.DitherNone),
	)
	if err != nil {
		panic(err)
	}

	codes := make([]int, 4)
	q.ProcessTo(codes, []float64{0, 0.25, -1, 1.5})
	fmt.Println(codes)
	// Output: [0 8192 -32768 32767]
}

func ExampleParseDitherType() {
	dt, err := dither.ParseDitherType("tpdf")
	if err != nil {
		panic(err)
	}
	fmt.Println(dt, dt == dither.DitherTriangular)
	// Output: tpdf true
}
