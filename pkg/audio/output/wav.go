// ABOUTME: WAV file audio output
// ABOUTME: Writes each stream to its own RIFF/WAVE file using go-audio/wav
package output

import (
	"fmt"
	"os"
	"path/filepath"

	ga "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retroplayer/audiobridge/pkg/audio"
	"github.com/retroplayer/audiobridge/pkg/audio/decode"
)

// WAV is a sink that records every stream to dir/<uuid>.wav.
// Float input is stored as 24-bit PCM.
type WAV struct {
	dir    string
	logger *zap.Logger
}

// WAVStream encodes ingested frames into one file
type WAVStream struct {
	format  audio.StreamFormat
	path    string
	file    *os.File
	encoder *wav.Encoder
	decoder decode.Decoder
	bias    int
	frames  int64
}

// NewWAV creates a WAV sink writing into dir
func NewWAV(dir string, logger *zap.Logger) *WAV {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WAV{dir: dir, logger: logger}
}

func wavBitDepth(f audio.SampleFormat) int {
	if f.IsFloat() {
		return 24
	}
	return audio.BitsUsed(f)
}

// CreateStream creates the file and writes its header
func (w *WAV) CreateStream(format audio.StreamFormat) (Stream, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	dec, err := decode.NewPCM(format.SampleFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.dir, uuid.NewString()+".wav")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create wav file: %w", err)
	}

	s := &WAVStream{
		format:  format,
		path:    path,
		file:    f,
		encoder: wav.NewEncoder(f, format.SampleRate, wavBitDepth(format.SampleFormat), format.Channels(), 1),
		decoder: dec,
	}
	// 8-bit WAV is unsigned
	if format.SampleFormat == audio.FormatU8 {
		s.bias = 128
	}

	// Write the header now so a stream with no audio is still a valid file
	if err := s.encoder.Write(s.buffer(nil)); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write wav header: %w", err)
	}

	w.logger.Info("recording stream", zap.String("path", path), zap.Stringer("format", format))
	return s, nil
}

// DestroyStream finalizes the headers and closes the file
func (w *WAV) DestroyStream(stream Stream) error {
	s, ok := stream.(*WAVStream)
	if !ok {
		return fmt.Errorf("not a wav stream: %T", stream)
	}

	encErr := s.encoder.Close()
	fileErr := s.file.Close()
	s.decoder.Close()

	if encErr != nil {
		return fmt.Errorf("failed to finalize wav file: %w", encErr)
	}
	if fileErr != nil {
		return fmt.Errorf("failed to close wav file: %w", fileErr)
	}

	w.logger.Info("recording finished", zap.String("path", s.path), zap.Int64("frames", s.frames))
	return nil
}

// Path returns the file the stream is writing
func (s *WAVStream) Path() string { return s.path }

// Frames returns the number of frames written so far
func (s *WAVStream) Frames() int64 { return s.frames }

// ChannelCount returns the stream's channel count
func (s *WAVStream) ChannelCount() int { return s.format.Channels() }

// SampleFormat returns the stream's sample format
func (s *WAVStream) SampleFormat() audio.SampleFormat { return s.format.SampleFormat }

func (s *WAVStream) buffer(samples []int32) *ga.IntBuffer {
	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(v) + s.bias
	}
	return &ga.IntBuffer{
		Format: &ga.Format{
			NumChannels: s.format.Channels(),
			SampleRate:  s.format.SampleRate,
		},
		Data:           data,
		SourceBitDepth: wavBitDepth(s.format.SampleFormat),
	}
}

// Ingest decodes frames and appends them to the file
func (s *WAVStream) Ingest(data []byte, offset, frames int) error {
	start, end, err := frameBounds(data, offset, frames, s.format.FrameSize())
	if err != nil {
		return err
	}
	if frames == 0 {
		return nil
	}

	samples, err := s.decoder.Decode(data[start:end])
	if err != nil {
		return err
	}
	if err := s.encoder.Write(s.buffer(samples)); err != nil {
		return fmt.Errorf("wav write failed: %w", err)
	}
	s.frames += int64(frames)
	return nil
}
