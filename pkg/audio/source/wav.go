// ABOUTME: WAV file source
// ABOUTME: Streams the raw PCM chunk of a WAV file using go-audio/wav
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// WAV reads PCM frames straight from a WAV file's data chunk
type WAV struct {
	file   *os.File
	pcm    io.Reader
	format audio.StreamFormat
	title  string
}

// wavSampleFormat maps a WAV header to a sample format
func wavSampleFormat(audioFormat, bitDepth uint16) (audio.SampleFormat, error) {
	switch {
	case audioFormat == wavFormatPCM && bitDepth == 8:
		return audio.FormatU8, nil
	case audioFormat == wavFormatPCM && bitDepth == 16:
		return audio.FormatS16LE, nil
	case audioFormat == wavFormatPCM && bitDepth == 24:
		return audio.FormatS24LE3, nil
	case audioFormat == wavFormatPCM && bitDepth == 32:
		return audio.FormatS32LE, nil
	case audioFormat == wavFormatFloat && bitDepth == 32:
		return audio.FormatFloat32LE, nil
	case audioFormat == wavFormatFloat && bitDepth == 64:
		return audio.FormatFloat64LE, nil
	}
	return audio.FormatInvalid, fmt.Errorf("unsupported wav encoding: format %d, %d bits", audioFormat, bitDepth)
}

// NewWAV opens a WAV file and positions it at the PCM data
func NewWAV(filePath string) (*WAV, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read WAV header: %w", err)
	}

	sampleFormat, err := wavSampleFormat(d.WavAudioFormat, d.BitDepth)
	if err != nil {
		f.Close()
		return nil, err
	}

	layout := audio.LayoutForCount(int(d.NumChans))
	if layout == nil {
		f.Close()
		return nil, fmt.Errorf("unsupported channel count: %d", d.NumChans)
	}

	if err := d.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to find PCM data: %w", err)
	}

	filename := filepath.Base(filePath)
	return &WAV{
		file: f,
		pcm:  io.LimitReader(d.PCMChunk, int64(d.PCMSize)),
		format: audio.StreamFormat{
			SampleFormat: sampleFormat,
			SampleRate:   int(d.SampleRate),
			Layout:       layout,
		},
		title: strings.TrimSuffix(filename, filepath.Ext(filename)),
	}, nil
}

// Format returns the file's format
func (s *WAV) Format() audio.StreamFormat { return s.format }

// Name returns the file name without extension
func (s *WAV) Name() string { return s.title }

// Read reads whole frames from the data chunk
func (s *WAV) Read(p []byte) (int, error) {
	return readFrames(s.pcm, p, s.format.FrameSize())
}

// Close closes the file
func (s *WAV) Close() error {
	return s.file.Close()
}
