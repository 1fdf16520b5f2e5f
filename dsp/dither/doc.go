// Package dither converts normalized float samples to integer PCM codes.
//
// A [Quantizer] scales by 2^(bits-1), optionally adds dither noise and
// shapes the requantization error, then rounds to the nearest code and
// clips to the signed range of the target bit depth. Without dither or
// shaping it is plain round-and-clip.
package dither
