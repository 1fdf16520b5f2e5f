package dither

import (
	"fmt"
	"strings"
)

// DitherType selects the probability distribution of the dither noise.
type DitherType int

const (
	// DitherNone rounds to the nearest code.
	DitherNone DitherType = iota
	// DitherRectangular adds uniform noise one code wide.
	DitherRectangular
	// DitherTriangular adds triangular (TPDF) noise, the difference of two
	// uniform draws.
	DitherTriangular

	ditherTypeCount
)

var ditherTypeNames = [ditherTypeCount]string{"none", "rpdf", "tpdf"}

// String returns the short name used on command lines.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}
	return fmt.Sprintf("DitherType(%d)", int(dt))
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseDitherType maps "none", "rpdf" or "tpdf" (any case) to a DitherType.
func ParseDitherType(s string) (DitherType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range ditherTypeNames {
		if n == name {
			return DitherType(i), nil
		}
	}
	return DitherNone, fmt.Errorf("%w: %q (expected none|rpdf|tpdf)", ErrInvalidDitherType, s)
}
