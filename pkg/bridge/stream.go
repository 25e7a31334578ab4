// ABOUTME: Owned stream handle
// ABOUTME: Wraps a sink stream so it is destroyed exactly once
package bridge

import (
	"github.com/retroplayer/audiobridge/pkg/audio"
	"github.com/retroplayer/audiobridge/pkg/audio/output"
)

// ownedStream is the bridge's exclusive claim on a sink stream. release
// hands the stream back to its factory once; later calls do nothing.
type ownedStream struct {
	factory   output.Factory
	stream    output.Stream
	format    audio.StreamFormat
	frameSize int
	released  bool
}

func acquire(factory output.Factory, format audio.StreamFormat) (*ownedStream, error) {
	stream, err := factory.CreateStream(format)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, errNilStream
	}

	return &ownedStream{
		factory:   factory,
		stream:    stream,
		format:    format,
		frameSize: stream.ChannelCount() * audio.BytesPerSample(stream.SampleFormat()),
	}, nil
}

func (o *ownedStream) release() error {
	if o == nil || o.released {
		return nil
	}
	o.released = true
	return o.factory.DestroyStream(o.stream)
}
