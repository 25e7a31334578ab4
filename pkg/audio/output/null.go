// ABOUTME: Null audio sink
// ABOUTME: Accepts every valid format, discards data and counts frames
package output

import (
	"fmt"
	"sync"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

// Null is a sink that discards everything. It is used for headless runs
// and as a reference for sink bookkeeping.
type Null struct {
	mu        sync.Mutex
	created   int
	destroyed int
}

// NewNull creates a null sink
func NewNull() *Null {
	return &Null{}
}

// NullStream counts the frames it is given
type NullStream struct {
	format audio.StreamFormat
	frames int64
}

// CreateStream opens a stream for any valid format
func (n *Null) CreateStream(format audio.StreamFormat) (Stream, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	n.mu.Lock()
	n.created++
	n.mu.Unlock()

	return &NullStream{format: format}, nil
}

// DestroyStream releases a stream
func (n *Null) DestroyStream(stream Stream) error {
	if _, ok := stream.(*NullStream); !ok {
		return fmt.Errorf("not a null stream: %T", stream)
	}

	n.mu.Lock()
	n.destroyed++
	n.mu.Unlock()
	return nil
}

// Live returns the number of streams created but not yet destroyed
func (n *Null) Live() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.created - n.destroyed
}

// ChannelCount returns the layout's channel count
func (s *NullStream) ChannelCount() int { return s.format.Channels() }

// SampleFormat returns the stream's sample format
func (s *NullStream) SampleFormat() audio.SampleFormat { return s.format.SampleFormat }

// Frames returns the total frames ingested
func (s *NullStream) Frames() int64 { return s.frames }

// Ingest discards frames after checking the range
func (s *NullStream) Ingest(data []byte, offset, frames int) error {
	if _, _, err := frameBounds(data, offset, frames, s.format.FrameSize()); err != nil {
		return err
	}
	s.frames += int64(frames)
	return nil
}
