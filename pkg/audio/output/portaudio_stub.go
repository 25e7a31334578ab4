//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

var errPortAudioDisabled = fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")

// PortAudio output implementation (stub)
type PortAudio struct{}

// NewPortAudio creates a new PortAudio output
func NewPortAudio(framesPerBuffer int, logger *zap.Logger) *PortAudio {
	return &PortAudio{}
}

// CreateStream always fails without the portaudio build tag
func (p *PortAudio) CreateStream(format audio.StreamFormat) (Stream, error) {
	return nil, errPortAudioDisabled
}

// DestroyStream always fails without the portaudio build tag
func (p *PortAudio) DestroyStream(stream Stream) error {
	return errPortAudioDisabled
}
