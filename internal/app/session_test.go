// ABOUTME: Tests for playback session orchestration
// ABOUTME: Runs tone sources through the bridge into the null sink
package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroplayer/audiobridge/pkg/audio"
	"github.com/retroplayer/audiobridge/pkg/audio/output"
	"github.com/retroplayer/audiobridge/pkg/audio/source"
	"github.com/retroplayer/audiobridge/pkg/bridge"
)

func newTestSession(t *testing.T, format audio.StreamFormat, duration time.Duration, cfg Config) (*Session, *output.Null) {
	t.Helper()

	sink := output.NewNull()
	b, err := bridge.New(bridge.Config{Factory: sink})
	if err != nil {
		t.Fatalf("bridge.New failed: %v", err)
	}
	tone, err := source.NewTone(440, format, duration)
	if err != nil {
		t.Fatalf("NewTone failed: %v", err)
	}

	s := NewSession(b, tone, cfg, nil)
	t.Cleanup(func() { s.Close() })
	return s, sink
}

func stereo(rate int) audio.StreamFormat {
	return audio.StreamFormat{SampleFormat: audio.FormatS16LE, SampleRate: rate, Layout: audio.LayoutStereo}
}

func TestSessionPlaysToEnd(t *testing.T) {
	s, sink := newTestSession(t, stereo(48000), 100*time.Millisecond, Config{ChunkFrames: 1024})

	if s.Status().State != StateIdle {
		t.Errorf("expected idle state, got %s", s.Status().State)
	}
	if s.ID() == "" {
		t.Error("expected session ID")
	}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	st := s.Status()
	if st.State != StateFinished {
		t.Errorf("expected finished state, got %s", st.State)
	}
	if st.Open {
		t.Error("expected stream to be closed after Run")
	}
	if st.Stats.FramesForwarded != 4800 {
		t.Errorf("expected 4800 frames, got %d", st.Stats.FramesForwarded)
	}
	if st.Stats.StreamsOpened != 1 || st.Stats.StreamsClosed != 1 {
		t.Errorf("expected 1 opened / 1 closed, got %d / %d", st.Stats.StreamsOpened, st.Stats.StreamsClosed)
	}
	if sink.Live() != 0 {
		t.Errorf("expected 0 live streams, got %d", sink.Live())
	}
}

func TestSessionUnsupportedRate(t *testing.T) {
	s, sink := newTestSession(t, stereo(45000), 10*time.Millisecond, Config{})

	err := s.Run(context.Background())
	if !errors.Is(err, bridge.ErrUnsupportedRate) {
		t.Fatalf("expected ErrUnsupportedRate, got %v", err)
	}

	st := s.Status()
	if st.State != StateFailed {
		t.Errorf("expected failed state, got %s", st.State)
	}
	if st.Err == nil {
		t.Error("expected status error")
	}
	if sink.Live() != 0 {
		t.Errorf("expected 0 live streams, got %d", sink.Live())
	}
}

func TestSessionStartsMuted(t *testing.T) {
	s, _ := newTestSession(t, stereo(48000), 100*time.Millisecond, Config{ChunkFrames: 1024, Muted: true})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	st := s.Status()
	if st.Enabled {
		t.Error("expected bridge disabled")
	}
	if st.Stats.FramesForwarded != 0 {
		t.Errorf("expected 0 frames forwarded, got %d", st.Stats.FramesForwarded)
	}
	if st.Stats.BuffersDropped != 5 {
		t.Errorf("expected 5 dropped buffers, got %d", st.Stats.BuffersDropped)
	}
}

func TestSessionMuteAndStop(t *testing.T) {
	s, sink := newTestSession(t, stereo(44100), 0, Config{ChunkFrames: 512})

	muteSent := false
	s.OnStatus(func(st Status) {
		if !muteSent && st.Stats.FramesForwarded >= 2048 {
			muteSent = true
			s.Mute(true)
		}
		if st.Stats.BuffersDropped >= 3 {
			s.Stop()
		}
	})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	st := s.Status()
	if st.State != StateStopped {
		t.Errorf("expected stopped state, got %s", st.State)
	}
	if st.Enabled {
		t.Error("expected bridge disabled after mute")
	}
	if st.Stats.FramesForwarded < 2048 {
		t.Errorf("expected at least 2048 frames forwarded, got %d", st.Stats.FramesForwarded)
	}
	if st.Stats.BuffersDropped < 3 {
		t.Errorf("expected at least 3 dropped buffers, got %d", st.Stats.BuffersDropped)
	}
	if sink.Live() != 0 {
		t.Errorf("expected 0 live streams, got %d", sink.Live())
	}
}

func TestSessionContextCancel(t *testing.T) {
	s, _ := newTestSession(t, stereo(48000), 0, Config{ChunkFrames: 256})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.OnStatus(func(st Status) {
		if st.Stats.FramesForwarded > 0 {
			cancel()
		}
	})

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if s.Status().State != StateStopped {
		t.Errorf("expected stopped state, got %s", s.Status().State)
	}
}

func TestSessionRealtimePacing(t *testing.T) {
	format := audio.StreamFormat{SampleFormat: audio.FormatU8, SampleRate: 8000, Layout: audio.LayoutMono}
	s, _ := newTestSession(t, format, 50*time.Millisecond, Config{ChunkFrames: 100, Realtime: true})

	start := time.Now()
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	elapsed := time.Since(start)

	// 4 chunks of 12.5ms; the last read returns EOF without waiting
	if elapsed < 30*time.Millisecond {
		t.Errorf("expected paced playback to take at least 30ms, took %v", elapsed)
	}
	if got := s.Status().Stats.FramesForwarded; got != 400 {
		t.Errorf("expected 400 frames, got %d", got)
	}
}
