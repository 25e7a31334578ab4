// ABOUTME: Audio output interface definition
// ABOUTME: Common interfaces for sink factories and their streams
package output

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

// ErrUnsupportedFormat is returned by CreateStream when a sink cannot play a format
var ErrUnsupportedFormat = errors.New("format not supported by sink")

// Stream is a live connection to a sink
type Stream interface {
	// ChannelCount returns the number of interleaved channels per frame
	ChannelCount() int

	// SampleFormat returns the PCM encoding the stream expects
	SampleFormat() audio.SampleFormat

	// Ingest hands frames to the sink, starting offset frames into data.
	// It may block while the sink drains its buffer.
	Ingest(data []byte, offset, frames int) error
}

// Factory creates and destroys streams on one sink
type Factory interface {
	// CreateStream opens a stream for format
	CreateStream(format audio.StreamFormat) (Stream, error)

	// DestroyStream releases a stream returned by CreateStream
	DestroyStream(stream Stream) error
}

// Options configures the sinks returned by New
type Options struct {
	// Dir is where the wav sink writes its files
	Dir string

	// BufferSize is the device buffer length for oto (0 = driver default)
	BufferSize time.Duration

	// FramesPerBuffer is the PortAudio blocking-write chunk
	FramesPerBuffer int

	Logger *zap.Logger
}

// New returns the sink factory named by kind: oto, wav, portaudio or null
func New(kind string, opts Options) (Factory, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	switch kind {
	case "oto", "":
		return NewOto(opts.BufferSize, opts.Logger), nil
	case "wav":
		if opts.Dir == "" {
			return nil, fmt.Errorf("wav sink requires a directory")
		}
		return NewWAV(opts.Dir, opts.Logger), nil
	case "portaudio":
		return NewPortAudio(opts.FramesPerBuffer, opts.Logger), nil
	case "null":
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("unknown sink type: %s (supported: oto, wav, portaudio, null)", kind)
	}
}

// frameBounds returns the byte range of frames starting at offset frames into data
func frameBounds(data []byte, offset, frames, frameSize int) (int, int, error) {
	if offset < 0 || frames < 0 || frameSize <= 0 {
		return 0, 0, fmt.Errorf("invalid frame range: offset=%d frames=%d frameSize=%d", offset, frames, frameSize)
	}
	start := offset * frameSize
	end := start + frames*frameSize
	if end > len(data) {
		return 0, 0, fmt.Errorf("frame range exceeds buffer: need %d bytes, have %d", end, len(data))
	}
	return start, end, nil
}

func supports(format audio.SampleFormat, allowed ...audio.SampleFormat) bool {
	for _, f := range allowed {
		if f == format {
			return true
		}
	}
	return false
}
