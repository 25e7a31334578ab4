//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform audio output using PortAudio blocking writes
package output

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gordonklaus/portaudio"
	"go.uber.org/zap"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

const defaultFramesPerBuffer = 512

// PortAudio output implementation
type PortAudio struct {
	framesPerBuffer int
	logger          *zap.Logger
}

// PortAudioStream is one blocking PortAudio stream on the default device
type PortAudioStream struct {
	format audio.StreamFormat
	stream *portaudio.Stream
	write  func(data []byte) error
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio(framesPerBuffer int, logger *zap.Logger) *PortAudio {
	if framesPerBuffer <= 0 {
		framesPerBuffer = defaultFramesPerBuffer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortAudio{framesPerBuffer: framesPerBuffer, logger: logger}
}

// openBlocking opens a default output stream backed by a []T buffer and
// returns a writer that converts width-byte samples with conv.
func openBlocking[T uint8 | int16 | int32 | float32](channels, rate, fpb, width int, conv func([]byte) T) (*portaudio.Stream, func([]byte) error, error) {
	buf := make([]T, fpb*channels)
	stream, err := portaudio.OpenDefaultStream(0, channels, float64(rate), fpb, &buf)
	if err != nil {
		return nil, nil, err
	}

	write := func(data []byte) error {
		samples := len(data) / width
		for off := 0; off < samples; {
			n := min(samples-off, fpb*channels)
			buf = buf[:n]
			for i := range buf {
				buf[i] = conv(data[(off+i)*width:])
			}
			if err := stream.Write(); err != nil {
				return err
			}
			off += n
		}
		return nil
	}
	return stream, write, nil
}

// CreateStream initializes PortAudio and opens a stream for format
func (p *PortAudio) CreateStream(format audio.StreamFormat) (Stream, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if !supports(format.SampleFormat, audio.FormatU8, audio.FormatS16LE, audio.FormatS32LE, audio.FormatFloat32LE) {
		return nil, fmt.Errorf("%w: portaudio cannot play %s", ErrUnsupportedFormat, format.SampleFormat)
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	ch, rate, fpb := format.Channels(), format.SampleRate, p.framesPerBuffer

	var (
		stream *portaudio.Stream
		write  func([]byte) error
		err    error
	)
	switch format.SampleFormat {
	case audio.FormatU8:
		stream, write, err = openBlocking(ch, rate, fpb, 1, func(b []byte) uint8 { return b[0] })
	case audio.FormatS16LE:
		stream, write, err = openBlocking(ch, rate, fpb, 2, func(b []byte) int16 {
			return int16(binary.LittleEndian.Uint16(b))
		})
	case audio.FormatS32LE:
		stream, write, err = openBlocking(ch, rate, fpb, 4, func(b []byte) int32 {
			return int32(binary.LittleEndian.Uint32(b))
		})
	case audio.FormatFloat32LE:
		stream, write, err = openBlocking(ch, rate, fpb, 4, func(b []byte) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(b))
		})
	}
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to start stream: %w", err)
	}

	p.logger.Info("portaudio stream started", zap.Stringer("format", format), zap.Int("frames_per_buffer", fpb))
	return &PortAudioStream{format: format, stream: stream, write: write}, nil
}

// DestroyStream stops and closes the stream, then releases PortAudio
func (p *PortAudio) DestroyStream(stream Stream) error {
	s, ok := stream.(*PortAudioStream)
	if !ok {
		return fmt.Errorf("not a portaudio stream: %T", stream)
	}

	if err := s.stream.Stop(); err != nil {
		p.logger.Warn("failed to stop portaudio stream", zap.Error(err))
	}
	if err := s.stream.Close(); err != nil {
		portaudio.Terminate()
		return err
	}
	return portaudio.Terminate()
}

// ChannelCount returns the stream's channel count
func (s *PortAudioStream) ChannelCount() int { return s.format.Channels() }

// SampleFormat returns the stream's sample format
func (s *PortAudioStream) SampleFormat() audio.SampleFormat { return s.format.SampleFormat }

// Ingest writes frames to the device (blocks while the device buffer is full)
func (s *PortAudioStream) Ingest(data []byte, offset, frames int) error {
	start, end, err := frameBounds(data, offset, frames, s.format.FrameSize())
	if err != nil {
		return err
	}
	return s.write(data[start:end])
}
