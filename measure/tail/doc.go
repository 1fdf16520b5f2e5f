// Package tail measures the output of a reverberator driven by a unit
// impulse.
//
// [Render] feeds an [effects.AudioEffect] one impulse on both inputs and
// records the stereo tail. The remaining functions reduce such a tail to
// numbers that are easy to compare between parameter settings:
//
//   - Energy, EnergyEnvelope: total and windowed energy
//   - SchroederCurve, RT60, EDT: backward-integrated decay and decay times
//   - Correlation: normalized zero-lag cross-correlation of two channels
//   - Spectrum, SpectralCentroid: magnitude spectrum and its centroid
//
// # Usage
//
//	fx, _ := reverb.NewFreeVerb(48000)
//	resp, _ := tail.Render(fx, 4*48000)
//	m, _ := tail.Analyze(resp, 48000)
//	fmt.Printf("RT60 = %.2f s, corr = %.2f\n", m.RT60, m.Correlation)
package tail
