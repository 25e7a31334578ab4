// ABOUTME: PCM audio decoder
// ABOUTME: Decodes every supported PCM sample format to int32 samples
package decode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

// PCMDecoder decodes PCM audio
type PCMDecoder struct {
	format audio.SampleFormat
	width  int
}

// NewPCM creates a new PCM decoder for the given sample format
func NewPCM(format audio.SampleFormat) (Decoder, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported sample format: %s", format)
	}

	return &PCMDecoder{
		format: format,
		width:  audio.BytesPerSample(format),
	}, nil
}

// Decode converts PCM bytes to int32 samples
func (d *PCMDecoder) Decode(data []byte) ([]int32, error) {
	numSamples := len(data) / d.width
	samples := make([]int32, numSamples)

	for i := 0; i < numSamples; i++ {
		b := data[i*d.width : (i+1)*d.width]

		switch d.format {
		case audio.FormatU8:
			samples[i] = int32(b[0]) - 128
		case audio.FormatS16LE:
			samples[i] = int32(int16(binary.LittleEndian.Uint16(b)))
		case audio.FormatS16BE:
			samples[i] = int32(int16(binary.BigEndian.Uint16(b)))
		case audio.FormatS24LE3, audio.FormatS24LE4:
			// padding byte of the 4-byte container is ignored
			samples[i] = audio.SampleFrom24Bit([3]byte{b[0], b[1], b[2]})
		case audio.FormatS32LE:
			samples[i] = int32(binary.LittleEndian.Uint32(b))
		case audio.FormatFloat32LE:
			samples[i] = floatToSample(float64(math.Float32frombits(binary.LittleEndian.Uint32(b))))
		case audio.FormatFloat64LE:
			samples[i] = floatToSample(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		}
	}

	return samples, nil
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}

// floatToSample maps [-1, 1] onto the 24-bit range with clipping
func floatToSample(f float64) int32 {
	if math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		f = 1
	} else if f < -1 {
		f = -1
	}
	return int32(math.Round(f * audio.Max24Bit))
}
