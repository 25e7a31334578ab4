// ABOUTME: Audio source abstraction for file playback and generated tones
// ABOUTME: Selects a producer from a source spec string
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

// Source provides raw PCM in a fixed format
type Source interface {
	// Format returns the format of the bytes returned by Read
	Format() audio.StreamFormat

	// Read fills p with whole frames. It returns io.EOF when the source is exhausted.
	Read(p []byte) (int, error)

	// Name returns a short display name
	Name() string

	// Close releases the source
	Close() error
}

// Default tone parameters for Open
const (
	DefaultToneFrequency = 440.0
	DefaultToneRate      = 48000
)

// Open creates a source from spec:
//
//	tone                 440 Hz at 48000 Hz
//	tone:<freq>[@rate]   sine at freq, optionally at rate
//	path/to/file.wav
//	path/to/file.mp3
func Open(spec string) (Source, error) {
	if spec == "tone" || strings.HasPrefix(spec, "tone:") {
		freq, rate, err := parseTone(strings.TrimPrefix(strings.TrimPrefix(spec, "tone"), ":"))
		if err != nil {
			return nil, err
		}
		format := audio.StreamFormat{
			SampleFormat: audio.FormatS16LE,
			SampleRate:   rate,
			Layout:       audio.LayoutStereo,
		}
		return NewTone(freq, format, 0)
	}

	if _, err := os.Stat(spec); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", spec)
	}

	ext := strings.ToLower(filepath.Ext(spec))
	switch ext {
	case ".wav":
		return NewWAV(spec)
	case ".mp3":
		return NewMP3(spec)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, tone:<freq>[@rate])", ext)
	}
}

func parseTone(s string) (float64, int, error) {
	freq, rate := DefaultToneFrequency, DefaultToneRate
	if s == "" {
		return freq, rate, nil
	}

	freqStr, rateStr, hasRate := strings.Cut(s, "@")
	if freqStr != "" {
		f, err := strconv.ParseFloat(freqStr, 64)
		if err != nil || f <= 0 {
			return 0, 0, fmt.Errorf("invalid tone frequency: %q", freqStr)
		}
		freq = f
	}
	if hasRate {
		r, err := strconv.Atoi(rateStr)
		if err != nil || r <= 0 {
			return 0, 0, fmt.Errorf("invalid tone rate: %q", rateStr)
		}
		rate = r
	}
	return freq, rate, nil
}

// readFrames reads whole frames from r into p. A trailing partial frame at
// the end of r is discarded.
func readFrames(r io.Reader, p []byte, frameSize int) (int, error) {
	want := len(p) / frameSize * frameSize
	if want == 0 {
		return 0, io.ErrShortBuffer
	}

	n, err := io.ReadFull(r, p[:want])
	n = n / frameSize * frameSize
	switch err {
	case nil:
		return n, nil
	case io.ErrUnexpectedEOF:
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	default:
		return n, err
	}
}
