// ABOUTME: Tests for PCM decoder
// ABOUTME: Tests decoding of every sample format and partial trailing samples
package decode

import (
	"testing"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

func TestNewPCM(t *testing.T) {
	decoder, err := NewPCM(audio.FormatS16LE)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	if decoder == nil {
		t.Fatal("expected decoder to be created")
	}
}

func TestNewPCM_InvalidFormat(t *testing.T) {
	decoder, err := NewPCM(audio.FormatInvalid)
	if err == nil {
		t.Fatal("expected error for invalid format, got nil")
	}

	if decoder != nil {
		t.Fatal("expected decoder to be nil for invalid format")
	}

	expectedError := "unsupported sample format: invalid(0)"
	if err.Error() != expectedError {
		t.Errorf("expected error %q, got %q", expectedError, err.Error())
	}
}

func TestPCMDecode(t *testing.T) {
	tests := []struct {
		name     string
		format   audio.SampleFormat
		input    []byte
		expected []int32
	}{
		{"u8", audio.FormatU8, []byte{0x80, 0xFF, 0x00}, []int32{0, 127, -128}},
		{"s16le", audio.FormatS16LE, []byte{0x00, 0x01, 0xFF, 0xFF}, []int32{256, -1}},
		{"s16be", audio.FormatS16BE, []byte{0x01, 0x00, 0x80, 0x00}, []int32{256, -32768}},
		{"s24le3", audio.FormatS24LE3, []byte{0x00, 0x01, 0x02, 0x00, 0x00, 0x80}, []int32{0x020100, audio.Min24Bit}},
		{"s24le4", audio.FormatS24LE4, []byte{0xFF, 0xFF, 0x7F, 0x00}, []int32{audio.Max24Bit}},
		{"s32le", audio.FormatS32LE, []byte{0x01, 0x00, 0x00, 0x80}, []int32{-2147483647}},
		{"f32le one", audio.FormatFloat32LE, []byte{0x00, 0x00, 0x80, 0x3F}, []int32{audio.Max24Bit}},
		{"f32le clipped", audio.FormatFloat32LE, []byte{0x00, 0x00, 0x00, 0xC0}, []int32{-audio.Max24Bit}},
		{"f64le zero", audio.FormatFloat64LE, make([]byte, 8), []int32{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoder, err := NewPCM(tt.format)
			if err != nil {
				t.Fatalf("failed to create decoder: %v", err)
			}

			output, err := decoder.Decode(tt.input)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}

			if len(output) != len(tt.expected) {
				t.Fatalf("expected %d samples, got %d", len(tt.expected), len(output))
			}
			for i := range output {
				if output[i] != tt.expected[i] {
					t.Errorf("sample %d: expected %d, got %d", i, tt.expected[i], output[i])
				}
			}
		})
	}
}

func TestPCMDecode_PartialSample(t *testing.T) {
	decoder, err := NewPCM(audio.FormatS16LE)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	// 5 bytes -> 2 full samples, trailing byte ignored
	output, err := decoder.Decode([]byte{0x01, 0x00, 0x02, 0x00, 0x03})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if len(output) != 2 {
		t.Errorf("expected 2 samples, got %d", len(output))
	}
}

func TestPCMDecode_EmptyInput(t *testing.T) {
	decoder, err := NewPCM(audio.FormatS24LE3)
	if err != nil {
		t.Fatalf("failed to create decoder: %v", err)
	}

	output, err := decoder.Decode([]byte{})
	if err != nil {
		t.Fatalf("decode failed with empty input: %v", err)
	}

	if len(output) != 0 {
		t.Errorf("expected 0 samples from empty input, got %d", len(output))
	}
}
