// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines sample formats, channel layouts and stream formats
// Package audio provides fundamental PCM types shared by the bridge, its
// sinks and its producers.
//
// This package defines:
//   - SampleFormat: uncompressed PCM encodings with BitsUsed / BitsTotal
//   - Channel and Layout: ordered speaker positions of a frame
//   - StreamFormat: sample format, sample rate and layout of a stream
//
// It also provides utilities for converting between sample widths:
//   - 16-bit ↔ 24-bit conversions
//   - int32 ↔ packed byte conversions
//
// Example:
//
//	format := audio.StreamFormat{
//	    SampleFormat: audio.FormatS16LE,
//	    SampleRate:   48000,
//	    Layout:       audio.LayoutStereo,
//	}
//
//	frameSize := format.FrameSize() // 4 bytes
package audio
