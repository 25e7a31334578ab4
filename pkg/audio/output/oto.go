// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays PCM on the default device through a shared oto context
package output

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

// Oto output implementation using oto library.
//
// oto allows one context per process, so the first stream fixes the device
// rate, channel count and encoding. Later streams must match it.
type Oto struct {
	mu         sync.Mutex
	otoCtx     *oto.Context
	format     audio.StreamFormat
	bufferSize time.Duration
	logger     *zap.Logger
	live       int
}

// OtoStream is one player on the shared context, fed through a pipe
type OtoStream struct {
	format     audio.StreamFormat
	player     *oto.Player
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
}

// NewOto creates a new Oto output
func NewOto(bufferSize time.Duration, logger *zap.Logger) *Oto {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Oto{bufferSize: bufferSize, logger: logger}
}

func otoFormat(f audio.SampleFormat) (oto.Format, bool) {
	switch f {
	case audio.FormatU8:
		return oto.FormatUnsignedInt8, true
	case audio.FormatS16LE:
		return oto.FormatSignedInt16LE, true
	case audio.FormatFloat32LE:
		return oto.FormatFloat32LE, true
	}
	return 0, false
}

// CreateStream opens a player for format
func (o *Oto) CreateStream(format audio.StreamFormat) (Stream, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	encoding, ok := otoFormat(format.SampleFormat)
	if !ok {
		return nil, fmt.Errorf("%w: oto cannot play %s", ErrUnsupportedFormat, format.SampleFormat)
	}
	if ch := format.Channels(); ch < 1 || ch > 2 {
		return nil, fmt.Errorf("%w: oto supports 1 or 2 channels, got %d", ErrUnsupportedFormat, ch)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels(),
			Format:       encoding,
			BufferSize:   o.bufferSize,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return nil, fmt.Errorf("failed to create oto context: %w", err)
		}
		<-readyChan

		o.otoCtx = ctx
		o.format = format
		o.logger.Info("audio device initialized",
			zap.Int("rate", format.SampleRate),
			zap.Int("channels", format.Channels()),
			zap.Stringer("format", format.SampleFormat))
	} else if o.format.SampleRate != format.SampleRate ||
		o.format.Channels() != format.Channels() ||
		o.format.SampleFormat != format.SampleFormat {
		// oto doesn't support reinitialization
		return nil, fmt.Errorf("%w: device already running as %s", ErrUnsupportedFormat, o.format)
	} else if err := o.otoCtx.Resume(); err != nil {
		return nil, fmt.Errorf("failed to resume oto context: %w", err)
	}

	s := &OtoStream{format: format}

	// Create pipe for continuous streaming
	s.pipeReader, s.pipeWriter = io.Pipe()
	s.player = o.otoCtx.NewPlayer(s.pipeReader)
	s.player.Play()
	o.live++

	return s, nil
}

// DestroyStream stops the player and releases the pipe
func (o *Oto) DestroyStream(stream Stream) error {
	s, ok := stream.(*OtoStream)
	if !ok {
		return fmt.Errorf("not an oto stream: %T", stream)
	}

	s.pipeWriter.Close()
	err := s.player.Close()
	s.pipeReader.Close()

	o.mu.Lock()
	o.live--
	if o.live == 0 && o.otoCtx != nil {
		if serr := o.otoCtx.Suspend(); serr != nil {
			o.logger.Warn("failed to suspend audio device", zap.Error(serr))
		}
	}
	o.mu.Unlock()

	return err
}

// ChannelCount returns the stream's channel count
func (s *OtoStream) ChannelCount() int { return s.format.Channels() }

// SampleFormat returns the stream's sample format
func (s *OtoStream) SampleFormat() audio.SampleFormat { return s.format.SampleFormat }

// Ingest writes frames to the pipe (blocks until the player has read them)
func (s *OtoStream) Ingest(data []byte, offset, frames int) error {
	start, end, err := frameBounds(data, offset, frames, s.format.FrameSize())
	if err != nil {
		return err
	}
	if _, err := s.pipeWriter.Write(data[start:end]); err != nil {
		return fmt.Errorf("pipe write failed: %w", err)
	}
	return nil
}
