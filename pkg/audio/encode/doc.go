// ABOUTME: PCM encoder package
// ABOUTME: Turns int32 samples into raw PCM bytes of any SampleFormat
// Package encode converts int32 samples into raw interleaved PCM bytes.
//
// It is the inverse of package decode: integer formats take samples in
// their native signed range, float formats take samples on the 24-bit
// range. Out-of-range samples are clipped.
//
// Example:
//
//	encoder, err := encode.NewPCM(audio.FormatS24LE3)
//	data, err := encoder.Encode(samples)
package encode
