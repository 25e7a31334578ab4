// ABOUTME: Unit tests for PCM encoder
// ABOUTME: Tests encoding, clipping and round trips through the decoder
package encode

import (
	"bytes"
	"testing"

	"github.com/retroplayer/audiobridge/pkg/audio"
	"github.com/retroplayer/audiobridge/pkg/audio/decode"
)

func TestNewPCM(t *testing.T) {
	tests := []struct {
		name    string
		format  audio.SampleFormat
		wantErr bool
	}{
		{"s16le", audio.FormatS16LE, false},
		{"s24le3", audio.FormatS24LE3, false},
		{"f32le", audio.FormatFloat32LE, false},
		{"invalid", audio.FormatInvalid, true},
		{"out of range", audio.SampleFormat(99), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder, err := NewPCM(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if encoder == nil {
				t.Error("expected encoder to be created")
			}
		})
	}
}

func TestPCMEncode(t *testing.T) {
	tests := []struct {
		name     string
		format   audio.SampleFormat
		input    []int32
		expected []byte
	}{
		{"u8", audio.FormatU8, []int32{0, 127, -128}, []byte{0x80, 0xFF, 0x00}},
		{"u8 clipped", audio.FormatU8, []int32{1000}, []byte{0xFF}},
		{"s16le", audio.FormatS16LE, []int32{256, -1}, []byte{0x00, 0x01, 0xFF, 0xFF}},
		{"s16le clipped", audio.FormatS16LE, []int32{40000}, []byte{0xFF, 0x7F}},
		{"s16be", audio.FormatS16BE, []int32{256}, []byte{0x01, 0x00}},
		{"s24le3", audio.FormatS24LE3, []int32{0x123456}, []byte{0x56, 0x34, 0x12}},
		{"s24le4 negative", audio.FormatS24LE4, []int32{-256}, []byte{0x00, 0xFF, 0xFF, 0xFF}},
		{"s32le", audio.FormatS32LE, []int32{1}, []byte{0x01, 0x00, 0x00, 0x00}},
		{"f32le one", audio.FormatFloat32LE, []int32{audio.Max24Bit}, []byte{0x00, 0x00, 0x80, 0x3F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder, err := NewPCM(tt.format)
			if err != nil {
				t.Fatalf("failed to create encoder: %v", err)
			}

			output, err := encoder.Encode(tt.input)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}

			if !bytes.Equal(output, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, output)
			}
		})
	}
}

func TestPCMRoundTrip(t *testing.T) {
	samples := map[audio.SampleFormat][]int32{
		audio.FormatU8:     {0, 1, -1, 127, -128},
		audio.FormatS16LE:  {0, 100, -100, 32767, -32768},
		audio.FormatS16BE:  {0, 100, -100, 32767, -32768},
		audio.FormatS24LE3: {0, 100000, -100000, audio.Max24Bit, audio.Min24Bit},
		audio.FormatS24LE4: {0, 100000, -100000, audio.Max24Bit, audio.Min24Bit},
		audio.FormatS32LE:  {0, 1 << 30, -(1 << 30)},
	}

	for format, input := range samples {
		t.Run(format.String(), func(t *testing.T) {
			encoder, _ := NewPCM(format)
			decoder, _ := decode.NewPCM(format)

			data, err := encoder.Encode(input)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if len(data) != len(input)*audio.BytesPerSample(format) {
				t.Fatalf("expected %d bytes, got %d", len(input)*audio.BytesPerSample(format), len(data))
			}

			output, err := decoder.Decode(data)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			for i := range input {
				if output[i] != input[i] {
					t.Errorf("round-trip failed: %d -> %d", input[i], output[i])
				}
			}
		})
	}
}
