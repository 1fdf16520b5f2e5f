// Package effects defines the capability shared by sample-at-a-time stereo
// effects.
//
// Subpackages:
//   - github.com/cwbudde/algo-freeverb/dsp/effects/reverb
//
// Hosts and measurement code (see measure/tail) depend on [AudioEffect]
// rather than on a concrete effect type.
package effects
