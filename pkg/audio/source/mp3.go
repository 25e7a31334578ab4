// ABOUTME: MP3 file source
// ABOUTME: Decodes MP3 to 16-bit stereo PCM using go-mp3
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/go-mp3"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

// MP3 reads from an MP3 file
type MP3 struct {
	file    *os.File
	decoder *mp3.Decoder
	format  audio.StreamFormat
	title   string
}

// NewMP3 creates a new MP3 audio source
func NewMP3(filePath string) (*MP3, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	// Extract filename as title
	filename := filepath.Base(filePath)

	return &MP3{
		file:    f,
		decoder: decoder,
		// MP3 decoder outputs 16-bit stereo
		format: audio.StreamFormat{
			SampleFormat: audio.FormatS16LE,
			SampleRate:   decoder.SampleRate(),
			Layout:       audio.LayoutStereo,
		},
		title: strings.TrimSuffix(filename, filepath.Ext(filename)),
	}, nil
}

// Format returns 16-bit stereo at the file's rate
func (s *MP3) Format() audio.StreamFormat { return s.format }

// Name returns the file name without extension
func (s *MP3) Name() string { return s.title }

// Read decodes whole frames into p
func (s *MP3) Read(p []byte) (int, error) {
	return readFrames(s.decoder, p, s.format.FrameSize())
}

// Close closes the file
func (s *MP3) Close() error {
	return s.file.Close()
}
