// ABOUTME: Playback session orchestration
// ABOUTME: Owns the bridge and a source and serialises every bridge call on one goroutine
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retroplayer/audiobridge/pkg/audio"
	"github.com/retroplayer/audiobridge/pkg/audio/source"
	"github.com/retroplayer/audiobridge/pkg/bridge"
)

// State is the session's playback state
type State string

const (
	StateIdle      State = "idle"
	StateStreaming State = "streaming"
	StateFinished  State = "finished"
	StateStopped   State = "stopped"
	StateFailed    State = "failed"
)

// Config holds session configuration
type Config struct {
	// ChunkFrames is the number of frames read and pushed per iteration
	ChunkFrames int

	// Realtime paces pushes to the stream's sample rate
	Realtime bool

	// Muted starts the session with the bridge disabled
	Muted bool
}

// Status is a snapshot of the session
type Status struct {
	ID      string
	Source  string
	State   State
	Format  audio.StreamFormat
	Open    bool
	Enabled bool
	Stats   bridge.Stats
	Err     error
}

// Session plays one source through one bridge. Run owns the bridge: every
// bridge call happens on the goroutine running Run. Mute and Stop only send
// requests to it.
type Session struct {
	id     string
	config Config
	bridge *bridge.Bridge
	source source.Source
	logger *zap.Logger

	mute     chan bool
	stop     chan struct{}
	stopOnce sync.Once

	onStatus func(Status)

	mu     sync.Mutex
	status Status
}

// NewSession creates a session. It takes ownership of b and src.
func NewSession(b *bridge.Bridge, src source.Source, config Config, logger *zap.Logger) *Session {
	if config.ChunkFrames <= 0 {
		config.ChunkFrames = 1024
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.New().String()
	return &Session{
		id:     id,
		config: config,
		bridge: b,
		source: src,
		logger: logger.With(zap.String("session", id)),
		mute:   make(chan bool, 8),
		stop:   make(chan struct{}),
		status: Status{
			ID:      id,
			Source:  src.Name(),
			State:   StateIdle,
			Enabled: !config.Muted,
		},
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// OnStatus registers fn to receive status snapshots. It is called on the
// Run goroutine and must not block. Register before calling Run.
func (s *Session) OnStatus(fn func(Status)) {
	s.onStatus = fn
}

// Mute requests the bridge be muted or unmuted
func (s *Session) Mute(muted bool) {
	select {
	case s.mute <- muted:
	default:
		s.logger.Warn("mute request dropped, session busy")
	}
}

// Stop requests Run to return
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Status returns the latest snapshot
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Run opens a stream for the source's format and relays audio until the
// source ends, Stop is called or ctx is cancelled. The stream is closed
// before Run returns.
func (s *Session) Run(ctx context.Context) error {
	format := s.source.Format()

	s.bridge.SetEnabled(!s.config.Muted)

	if err := s.bridge.OpenStream(format); err != nil {
		if errors.Is(err, bridge.ErrUnsupportedRate) {
			s.logger.Error("source rate not supported by sink",
				zap.Int("rate", format.SampleRate),
				zap.Int("nearest", s.bridge.Normalize(format.SampleRate)),
				zap.Ints("supported", s.bridge.Rates().Rates()))
		}
		s.publish(StateFailed, err)
		return fmt.Errorf("failed to open stream: %w", err)
	}
	defer s.bridge.CloseStream()

	s.logger.Info("session started", zap.String("source", s.source.Name()), zap.Stringer("format", format))
	s.publish(StateStreaming, nil)

	buf := make([]byte, s.config.ChunkFrames*format.FrameSize())

	var tick <-chan time.Time
	if s.config.Realtime {
		period := time.Duration(s.config.ChunkFrames) * time.Second / time.Duration(format.SampleRate)
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		// Apply pending commands before each chunk
		select {
		case <-ctx.Done():
			return s.finish(StateStopped, nil)
		case <-s.stop:
			return s.finish(StateStopped, nil)
		case muted := <-s.mute:
			s.setMuted(muted)
			continue
		default:
		}

		n, err := s.source.Read(buf)
		if n > 0 {
			s.bridge.PushAudio(buf[:n])
			s.publish(StateStreaming, nil)
		}
		if err == io.EOF {
			return s.finish(StateFinished, nil)
		}
		if err != nil {
			return s.finish(StateFailed, fmt.Errorf("source read failed: %w", err))
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return s.finish(StateStopped, nil)
			case <-s.stop:
				return s.finish(StateStopped, nil)
			case muted := <-s.mute:
				s.setMuted(muted)
			case <-tick:
			}
		}
	}
}

func (s *Session) setMuted(muted bool) {
	s.bridge.SetEnabled(!muted)
	s.logger.Info("mute changed", zap.Bool("muted", muted))
	s.publish(StateStreaming, nil)
}

func (s *Session) finish(state State, err error) error {
	s.bridge.CloseStream()

	stats := s.bridge.Stats()
	s.logger.Info("session ended",
		zap.String("state", string(state)),
		zap.Int64("frames", stats.FramesForwarded),
		zap.Int64("dropped_buffers", stats.BuffersDropped),
		zap.Error(err))
	s.publish(state, err)
	return err
}

func (s *Session) publish(state State, err error) {
	format, open := s.bridge.Format()

	s.mu.Lock()
	s.status.State = state
	s.status.Format = format
	s.status.Open = open
	s.status.Enabled = s.bridge.Enabled()
	s.status.Stats = s.bridge.Stats()
	s.status.Err = err
	snapshot := s.status
	s.mu.Unlock()

	if s.onStatus != nil {
		s.onStatus(snapshot)
	}
}

// Close releases the bridge and the source. Call it after Run has returned.
func (s *Session) Close() error {
	bridgeErr := s.bridge.Close()
	sourceErr := s.source.Close()
	return errors.Join(bridgeErr, sourceErr)
}
