// Package onepole provides a single-pole IIR low-pass section.
//
// The recurrence is
//
//	y[n] = b0*x[n] - a1*y[n-1]
//
// Used as the damping element inside lowpass-feedback comb filters, where a
// damping amount d in [0,1] maps to b0 = 1-d, a1 = -d (see [Filter.SetPole]).
package onepole
