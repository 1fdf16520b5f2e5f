package effects

// AudioEffect is a sample-at-a-time stereo effect.
//
// Tick consumes one input frame and returns the output of the requested
// channel; LastOut reads the most recent output without advancing. Both
// report an error for a channel the effect does not produce. Clear drops all
// internal signal memory but keeps parameters.
type AudioEffect interface {
	Tick(inputL, inputR float64, channel int) (float64, error)
	Clear()
	LastOut(channel int) (float64, error)
}
