// ABOUTME: Audio type definitions
// ABOUTME: Defines PCM sample formats, their bit widths and sample conversions
package audio

import (
	"fmt"
	"math"
	"strings"
)

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// SampleFormat identifies an uncompressed PCM sample encoding
type SampleFormat int

const (
	FormatInvalid   SampleFormat = iota
	FormatU8                     // unsigned 8-bit
	FormatS16LE                  // signed 16-bit little-endian
	FormatS16BE                  // signed 16-bit big-endian
	FormatS24LE3                 // signed 24-bit packed in 3 bytes
	FormatS24LE4                 // signed 24-bit in the low bits of a 4-byte container
	FormatS32LE                  // signed 32-bit little-endian
	FormatFloat32LE              // IEEE float, 32-bit
	FormatFloat64LE              // IEEE float, 64-bit
)

var formatNames = map[SampleFormat]string{
	FormatU8:        "u8",
	FormatS16LE:     "s16le",
	FormatS16BE:     "s16be",
	FormatS24LE3:    "s24le3",
	FormatS24LE4:    "s24le4",
	FormatS32LE:     "s32le",
	FormatFloat32LE: "f32le",
	FormatFloat64LE: "f64le",
}

// String returns the short name of the format
func (f SampleFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("invalid(%d)", int(f))
}

// Valid reports whether f is a known PCM format
func (f SampleFormat) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// IsFloat reports whether samples are IEEE floats
func (f SampleFormat) IsFloat() bool {
	return f == FormatFloat32LE || f == FormatFloat64LE
}

// ParseSampleFormat converts a short name ("s16le", "f32le", ...) to a SampleFormat
func ParseSampleFormat(name string) (SampleFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return FormatInvalid, fmt.Errorf("unknown sample format: %q", name)
}

// BitsUsed returns the number of significant bits per sample.
// This is the value reported as bit depth.
func BitsUsed(f SampleFormat) int {
	switch f {
	case FormatU8:
		return 8
	case FormatS16LE, FormatS16BE:
		return 16
	case FormatS24LE3, FormatS24LE4:
		return 24
	case FormatS32LE, FormatFloat32LE:
		return 32
	case FormatFloat64LE:
		return 64
	default:
		return 0
	}
}

// BitsTotal returns the container width of one sample in bits.
// Frame geometry is computed from this value, not from BitsUsed.
func BitsTotal(f SampleFormat) int {
	if f == FormatS24LE4 {
		return 32
	}
	return BitsUsed(f)
}

// BytesPerSample returns the container size of one sample
func BytesPerSample(f SampleFormat) int {
	return BitsTotal(f) >> 3
}

// FullScale returns the largest positive sample value for f on the
// int32 scale used by the decode and encode packages. Float formats
// share the 24-bit scale.
func FullScale(f SampleFormat) int32 {
	switch f {
	case FormatU8:
		return math.MaxInt8
	case FormatS16LE, FormatS16BE:
		return math.MaxInt16
	case FormatS32LE:
		return math.MaxInt32
	case FormatInvalid:
		return 0
	default:
		return Max24Bit
	}
}

// SampleTo24Bit converts int32 to 24-bit packed bytes (little-endian)
func SampleTo24Bit(sample int32) [3]byte {
	// Take lower 24 bits, pack little-endian
	return [3]byte{
		byte(sample),
		byte(sample >> 8),
		byte(sample >> 16),
	}
}

// SampleFrom24Bit converts 24-bit packed bytes to int32 (little-endian)
func SampleFrom24Bit(b [3]byte) int32 {
	// Reconstruct 24-bit value and sign-extend to 32-bit
	val := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	// Sign extend from 24-bit to 32-bit
	if val&0x800000 != 0 {
		val |= ^0xFFFFFF // Set upper 8 bits to 1 for negative values
	}
	return val
}
