// Package buffer provides interleaved multichannel sample frames and a pool
// for reusing them in realtime loops.
//
// A Frames value stores Len() frames of Channels() samples each, laid out
// frame by frame (L R L R ... for stereo). Effects that process whole
// buffers validate the channel count themselves; Frames accepts any count
// >= 1 so that callers can detect unsupported layouts explicitly.
package buffer
