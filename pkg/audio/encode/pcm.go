// ABOUTME: PCM audio encoder
// ABOUTME: Encodes int32 samples to every supported PCM sample format
package encode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

// PCMEncoder encodes PCM audio
type PCMEncoder struct {
	format audio.SampleFormat
	width  int
}

// NewPCM creates a new PCM encoder for the given sample format
func NewPCM(format audio.SampleFormat) (Encoder, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported sample format: %s", format)
	}

	return &PCMEncoder{
		format: format,
		width:  audio.BytesPerSample(format),
	}, nil
}

// Encode converts int32 samples to PCM bytes
func (e *PCMEncoder) Encode(samples []int32) ([]byte, error) {
	output := make([]byte, len(samples)*e.width)

	for i, sample := range samples {
		b := output[i*e.width : (i+1)*e.width]

		switch e.format {
		case audio.FormatU8:
			b[0] = byte(clip(sample, math.MinInt8, math.MaxInt8) + 128)
		case audio.FormatS16LE:
			binary.LittleEndian.PutUint16(b, uint16(int16(clip(sample, math.MinInt16, math.MaxInt16))))
		case audio.FormatS16BE:
			binary.BigEndian.PutUint16(b, uint16(int16(clip(sample, math.MinInt16, math.MaxInt16))))
		case audio.FormatS24LE3:
			packed := audio.SampleTo24Bit(clip(sample, audio.Min24Bit, audio.Max24Bit))
			copy(b, packed[:])
		case audio.FormatS24LE4:
			// sign-extended into the padding byte
			binary.LittleEndian.PutUint32(b, uint32(clip(sample, audio.Min24Bit, audio.Max24Bit)))
		case audio.FormatS32LE:
			binary.LittleEndian.PutUint32(b, uint32(sample))
		case audio.FormatFloat32LE:
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(sampleToFloat(sample))))
		case audio.FormatFloat64LE:
			binary.LittleEndian.PutUint64(b, math.Float64bits(sampleToFloat(sample)))
		}
	}

	return output, nil
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}

func clip(sample, lo, hi int32) int32 {
	if sample > hi {
		return hi
	}
	if sample < lo {
		return lo
	}
	return sample
}

func sampleToFloat(sample int32) float64 {
	return float64(clip(sample, audio.Min24Bit, audio.Max24Bit)) / audio.Max24Bit
}
