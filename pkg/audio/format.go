// ABOUTME: Stream format descriptor
// ABOUTME: Combines sample format, sample rate and channel layout
package audio

import "fmt"

// StreamFormat describes the PCM data flowing through one output stream.
// It is fixed for the lifetime of the stream.
type StreamFormat struct {
	SampleFormat SampleFormat
	SampleRate   int
	Layout       Layout
}

// Channels returns the channel count of the layout
func (f StreamFormat) Channels() int {
	return f.Layout.Count()
}

// FrameSize returns the size in bytes of one frame (one sample per channel)
func (f StreamFormat) FrameSize() int {
	return f.Layout.Count() * BytesPerSample(f.SampleFormat)
}

// BitsPerSample returns the significant bits per sample
func (f StreamFormat) BitsPerSample() int {
	return BitsUsed(f.SampleFormat)
}

// Validate checks that the format can describe a real stream
func (f StreamFormat) Validate() error {
	if !f.SampleFormat.Valid() {
		return fmt.Errorf("invalid sample format: %s", f.SampleFormat)
	}
	if f.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", f.SampleRate)
	}
	if !f.Layout.Valid() {
		return fmt.Errorf("invalid channel layout: %q", f.Layout.String())
	}
	return nil
}

func (f StreamFormat) String() string {
	return fmt.Sprintf("%s %dHz [%s]", f.SampleFormat, f.SampleRate, f.Layout)
}
