// ABOUTME: Stream metadata reporting
// ABOUTME: Publishes the effective format of each opened stream to an observer
package bridge

import (
	"go.uber.org/zap"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

// Reporter receives the effective format of every stream the bridge opens.
// Calls are fire-and-forget.
type Reporter interface {
	ReportChannels(layout audio.Layout)
	ReportSampleRate(rate int)
	ReportBitsPerSample(bits int)
}

// NopReporter discards all reports
type NopReporter struct{}

func (NopReporter) ReportChannels(audio.Layout) {}
func (NopReporter) ReportSampleRate(int)        {}
func (NopReporter) ReportBitsPerSample(int)     {}

// LogReporter writes reports to a zap logger at info level
type LogReporter struct {
	Logger *zap.Logger
}

// ReportChannels logs the channel layout
func (r LogReporter) ReportChannels(layout audio.Layout) {
	r.Logger.Info("audio channels", zap.Stringer("layout", layout), zap.Int("count", layout.Count()))
}

// ReportSampleRate logs the sample rate
func (r LogReporter) ReportSampleRate(rate int) {
	r.Logger.Info("audio sample rate", zap.Int("rate", rate))
}

// ReportBitsPerSample logs the bit depth
func (r LogReporter) ReportBitsPerSample(bits int) {
	r.Logger.Info("audio bits per sample", zap.Int("bits", bits))
}
