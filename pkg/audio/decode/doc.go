// ABOUTME: PCM decoder package
// ABOUTME: Turns raw PCM bytes of any SampleFormat into int32 samples
// Package decode converts raw interleaved PCM bytes into int32 samples.
//
// Integer formats decode to their native signed range (u8 is re-centred
// around zero). Float formats decode onto the 24-bit range.
//
// Example:
//
//	decoder, err := decode.NewPCM(audio.FormatS16LE)
//	samples, err := decoder.Decode(frameBytes)
package decode
