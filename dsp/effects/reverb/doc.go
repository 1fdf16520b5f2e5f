// Package reverb provides a stereo Freeverb reverberator.
//
// FreeVerb follows Jezar's Freeverb tuning: eight lowpass-feedback comb
// filters in parallel per channel, followed by four Schroeder allpass
// filters in series. The right channel uses the same tunings offset by a
// fixed stereo spread so the two tails decorrelate. Input may be mono or
// stereo; output is always stereo.
//
// Signal flow per sample:
//
//	in  = (inL + inR) * gain
//	cL  = allpassL(sum combL(in))      cR = allpassR(sum combR(in))
//	outL = cL*wet1 + cR*wet2 + inL*dry
//	outR = cR*wet1 + cL*wet2 + inR*dry
//
// All user-facing parameters are normalised to [0,1]. Every setter
// recomputes the derived coefficients immediately, so a change applies from
// the next processed sample on. Freeze mode pins the comb feedback to 1 and
// the damping and input gain to 0, holding the current tail indefinitely;
// releasing it restores the previous room size and damping.
//
// A FreeVerb is not safe for concurrent use. Hosts that change parameters
// from another goroutine must serialise those calls with processing.
package reverb
