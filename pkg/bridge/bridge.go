// ABOUTME: Audio bridge implementation
// ABOUTME: Opens and closes sink streams and relays PCM frames to them
package bridge

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/retroplayer/audiobridge/pkg/audio"
	"github.com/retroplayer/audiobridge/pkg/audio/output"
)

var errNilStream = errors.New("factory returned no stream")

// Config holds bridge dependencies
type Config struct {
	// Rates is the supported rate table (nil = DefaultRateTable)
	Rates *RateTable

	// Factory creates and destroys sink streams
	Factory output.Factory

	// Reporter receives the effective format of each stream (nil = NopReporter)
	Reporter Reporter

	// Logger for diagnostics (nil = no logging)
	Logger *zap.Logger
}

// Stats are running relay counters
type Stats struct {
	FramesForwarded int64
	BuffersDropped  int64
	BytesTruncated  int64
	IngestErrors    int64
	StreamsOpened   int64
	StreamsClosed   int64
}

// Bridge owns at most one sink stream and relays PCM into it.
// It is not safe for concurrent use.
type Bridge struct {
	rates    *RateTable
	factory  output.Factory
	reporter Reporter
	logger   *zap.Logger

	enabled bool
	stream  *ownedStream
	stats   Stats
}

// New creates a bridge with no open stream, enabled
func New(cfg Config) (*Bridge, error) {
	if cfg.Factory == nil {
		return nil, ErrNoFactory
	}
	if cfg.Rates == nil {
		cfg.Rates = DefaultRateTable()
	}
	if cfg.Reporter == nil {
		cfg.Reporter = NopReporter{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	b := &Bridge{
		rates:    cfg.Rates,
		factory:  cfg.Factory,
		reporter: cfg.Reporter,
		logger:   cfg.Logger,
		enabled:  true,
	}
	b.logger.Debug("initializing audio")
	return b, nil
}

// OpenStream opens a PCM stream for format, closing any stream already open.
// The sample rate must be exactly supported; the bridge does not resample.
func (b *Bridge) OpenStream(format audio.StreamFormat) error {
	b.CloseStream()

	b.logger.Info("creating audio stream", zap.Int("rate", format.SampleRate), zap.Stringer("format", format))

	if err := format.Validate(); err != nil {
		b.logger.Error("invalid stream format", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if nearest := b.rates.Normalize(format.SampleRate); nearest != format.SampleRate {
		b.logger.Error("resampling not supported",
			zap.Int("rate", format.SampleRate),
			zap.Int("nearest", nearest))
		return fmt.Errorf("%w: %d Hz (nearest supported is %d Hz)", ErrUnsupportedRate, format.SampleRate, nearest)
	}

	stream, err := acquire(b.factory, format)
	if err != nil {
		b.logger.Error("failed to create audio stream", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}

	b.stream = stream
	b.stats.StreamsOpened++

	b.reporter.ReportChannels(format.Layout)
	b.reporter.ReportSampleRate(format.SampleRate)
	b.reporter.ReportBitsPerSample(audio.BitsUsed(format.SampleFormat))

	return nil
}

// OpenEncodedStream is the passthrough entry point. Encoded audio is not
// supported; it always returns ErrUnsupportedMode and leaves any open stream alone.
func (b *Bridge) OpenEncodedStream(codec string, rate int, layout audio.Layout) error {
	b.logger.Error("encoded audio stream not supported",
		zap.String("codec", codec),
		zap.Int("rate", rate),
		zap.Stringer("layout", layout))
	return fmt.Errorf("%w: %s", ErrUnsupportedMode, codec)
}

// CloseStream destroys the open stream, if any
func (b *Bridge) CloseStream() {
	if b.stream == nil {
		return
	}

	b.logger.Debug("closing audio stream")

	stream := b.stream
	b.stream = nil
	if err := stream.release(); err != nil {
		b.logger.Warn("failed to destroy audio stream", zap.Error(err))
	}
	b.stats.StreamsClosed++
}

// PushAudio forwards the whole frames in data to the open stream and returns
// how many were forwarded. Data is dropped while disabled or with no stream.
// A trailing partial frame is discarded.
func (b *Bridge) PushAudio(data []byte) int {
	if !b.enabled || b.stream == nil || b.stream.frameSize <= 0 {
		b.stats.BuffersDropped++
		return 0
	}

	frameSize := b.stream.frameSize
	frames := len(data) / frameSize
	b.stats.BytesTruncated += int64(len(data) % frameSize)
	if frames == 0 {
		return 0
	}

	if err := b.stream.stream.Ingest(data, 0, frames); err != nil {
		b.stats.IngestErrors++
		b.logger.Debug("sink rejected audio", zap.Int("frames", frames), zap.Error(err))
		return 0
	}

	b.stats.FramesForwarded += int64(frames)
	return frames
}

// SetEnabled mutes (false) or unmutes (true) the relay. The stream stays open.
func (b *Bridge) SetEnabled(enabled bool) {
	b.enabled = enabled
}

// Enabled reports whether audio is being relayed
func (b *Bridge) Enabled() bool {
	return b.enabled
}

// IsOpen reports whether a stream is open
func (b *Bridge) IsOpen() bool {
	return b.stream != nil
}

// Format returns the format of the open stream
func (b *Bridge) Format() (audio.StreamFormat, bool) {
	if b.stream == nil {
		return audio.StreamFormat{}, false
	}
	return b.stream.format, true
}

// Normalize returns the supported rate nearest to rate
func (b *Bridge) Normalize(rate int) int {
	return b.rates.Normalize(rate)
}

// Rates returns the bridge's rate table
func (b *Bridge) Rates() *RateTable {
	return b.rates
}

// Stats returns a snapshot of the relay counters
func (b *Bridge) Stats() Stats {
	return b.stats
}

// Close closes the open stream. The bridge must not be used afterwards.
func (b *Bridge) Close() error {
	b.logger.Debug("deinitializing audio")
	b.CloseStream()
	return nil
}
