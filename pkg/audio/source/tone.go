// ABOUTME: Test tone generator
// ABOUTME: Generates a sine wave in any PCM format and layout
package source

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/retroplayer/audiobridge/pkg/audio"
	"github.com/retroplayer/audiobridge/pkg/audio/encode"
)

// Tone generates a sine wave at half full scale on every channel
type Tone struct {
	format    audio.StreamFormat
	frequency float64
	encoder   encode.Encoder
	amplitude float64
	index     uint64
	// limit is the total frame count, 0 = endless
	limit uint64
}

// NewTone creates a sine generator. A zero duration never ends.
func NewTone(frequency float64, format audio.StreamFormat, duration time.Duration) (*Tone, error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("invalid tone frequency: %v", frequency)
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}
	enc, err := encode.NewPCM(format.SampleFormat)
	if err != nil {
		return nil, err
	}

	t := &Tone{
		format:    format,
		frequency: frequency,
		encoder:   enc,
		amplitude: float64(audio.FullScale(format.SampleFormat)) * 0.5, // 50% volume
	}
	if duration > 0 {
		t.limit = uint64(duration) * uint64(format.SampleRate) / uint64(time.Second)
	}
	return t, nil
}

// Format returns the tone's format
func (t *Tone) Format() audio.StreamFormat { return t.format }

// Name returns the tone description
func (t *Tone) Name() string {
	return fmt.Sprintf("tone %gHz", t.frequency)
}

// Read fills p with as many whole frames as fit
func (t *Tone) Read(p []byte) (int, error) {
	frameSize := t.format.FrameSize()
	frames := uint64(len(p) / frameSize)
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}
	if t.limit > 0 {
		if t.index >= t.limit {
			return 0, io.EOF
		}
		frames = min(frames, t.limit-t.index)
	}

	channels := t.format.Channels()
	samples := make([]int32, int(frames)*channels)
	for i := uint64(0); i < frames; i++ {
		x := float64(t.index+i) / float64(t.format.SampleRate)
		v := int32(math.Round(math.Sin(2*math.Pi*t.frequency*x) * t.amplitude))
		for c := 0; c < channels; c++ {
			samples[int(i)*channels+c] = v
		}
	}
	t.index += frames

	data, err := t.encoder.Encode(samples)
	if err != nil {
		return 0, err
	}
	return copy(p, data), nil
}

// Close releases the encoder
func (t *Tone) Close() error {
	return t.encoder.Close()
}
