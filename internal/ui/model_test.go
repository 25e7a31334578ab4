// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, message handling, and key controls
package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/retroplayer/audiobridge/internal/app"
	"github.com/retroplayer/audiobridge/pkg/audio"
	"github.com/retroplayer/audiobridge/pkg/bridge"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil, bridge.DefaultRates, false) // Controls are optional for testing

	if model.open {
		t.Error("expected no stream initially")
	}
	if model.muted {
		t.Error("expected muted to be false initially")
	}
	if model.showDebug {
		t.Error("expected showDebug to be false initially")
	}
	if model.state != "idle" {
		t.Errorf("expected state 'idle', got '%s'", model.state)
	}
}

func TestStatusMsgStreaming(t *testing.T) {
	model := NewModel(nil, nil, false)

	st := app.Status{
		ID:      "abc",
		Source:  "tone 440Hz",
		State:   app.StateStreaming,
		Open:    true,
		Enabled: true,
		Format:  audio.StreamFormat{SampleFormat: audio.FormatS16LE, SampleRate: 48000, Layout: audio.LayoutStereo},
		Stats:   bridge.Stats{FramesForwarded: 4800, BuffersDropped: 2, BytesTruncated: 3, StreamsOpened: 1},
	}
	updated, _ := model.Update(StatusMsg{Status: st})
	model = updated.(Model)

	if model.sessionID != "abc" || model.sourceName != "tone 440Hz" {
		t.Errorf("unexpected session info: %q %q", model.sessionID, model.sourceName)
	}
	if model.state != "streaming" {
		t.Errorf("expected state 'streaming', got '%s'", model.state)
	}
	if !model.open {
		t.Error("expected open stream")
	}
	if model.sampleFormat != "s16le" {
		t.Errorf("expected sample format 's16le', got '%s'", model.sampleFormat)
	}
	if model.forwarded != 4800 || model.dropped != 2 || model.truncated != 3 {
		t.Errorf("unexpected stats: %d %d %d", model.forwarded, model.dropped, model.truncated)
	}
	if model.opened != 1 {
		t.Errorf("expected 1 opened stream, got %d", model.opened)
	}
}

func TestStatusMsgFailure(t *testing.T) {
	model := NewModel(nil, nil, false)

	model.applyStatus(app.Status{State: app.StateFailed, Err: errors.New("sample rate not supported")})
	if model.lastErr != "sample rate not supported" {
		t.Errorf("expected error to be shown, got '%s'", model.lastErr)
	}

	model.applyStatus(app.Status{State: app.StateStreaming})
	if model.lastErr != "" {
		t.Error("expected error to clear on next status")
	}
}

func TestStatusMsgMuted(t *testing.T) {
	model := NewModel(nil, nil, false)

	model.applyStatus(app.Status{Enabled: false})
	if !model.muted {
		t.Error("expected muted when bridge disabled")
	}
	model.applyStatus(app.Status{Enabled: true})
	if model.muted {
		t.Error("expected unmuted when bridge enabled")
	}
}

func TestFormatMsg(t *testing.T) {
	model := NewModel(nil, nil, false)

	model.applyFormat(FormatMsg{Layout: audio.Layout51})
	model.applyFormat(FormatMsg{SampleRate: 44100})
	model.applyFormat(FormatMsg{BitsPerSample: 24})

	if model.layout.Count() != 6 {
		t.Errorf("expected 6 channels, got %d", model.layout.Count())
	}
	if model.sampleRate != 44100 {
		t.Errorf("expected sampleRate 44100, got %d", model.sampleRate)
	}
	if model.bitsPerSample != 24 {
		t.Errorf("expected 24 bits, got %d", model.bitsPerSample)
	}

	// Zero fields leave previous values alone
	model.applyFormat(FormatMsg{})
	if model.sampleRate != 44100 || model.bitsPerSample != 24 || model.layout == nil {
		t.Error("empty format message cleared values")
	}
}

func TestReporterSendsFormatMsgs(t *testing.T) {
	var msgs []tea.Msg
	r := &Reporter{send: func(m tea.Msg) { msgs = append(msgs, m) }}

	var _ bridge.Reporter = r

	r.ReportChannels(audio.LayoutStereo)
	r.ReportSampleRate(32000)
	r.ReportBitsPerSample(16)

	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if fm, ok := msgs[1].(FormatMsg); !ok || fm.SampleRate != 32000 {
		t.Errorf("unexpected rate message: %#v", msgs[1])
	}
}

func TestMuteKeySendsControl(t *testing.T) {
	ctrl := NewControls()
	model := NewModel(ctrl, nil, false)

	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	model = updated.(Model)

	if !model.muted {
		t.Error("expected muted after 'm'")
	}
	select {
	case muted := <-ctrl.Mute:
		if !muted {
			t.Error("expected mute=true on control channel")
		}
	default:
		t.Error("expected mute control message")
	}
}

func TestQuitKeySendsControl(t *testing.T) {
	ctrl := NewControls()
	model := NewModel(ctrl, nil, false)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command")
	}
	select {
	case <-ctrl.Quit:
	default:
		t.Error("expected quit control message")
	}
}

func TestViewRendersStream(t *testing.T) {
	model := NewModel(nil, bridge.DefaultRates, false)
	model.width = 80

	if !strings.Contains(model.View(), "No stream") {
		t.Error("expected 'No stream' before open")
	}

	model.applyStatus(app.Status{State: app.StateStreaming, Open: true, Enabled: true,
		Format: audio.StreamFormat{SampleFormat: audio.FormatS16LE, SampleRate: 48000, Layout: audio.LayoutStereo}})
	model.applyFormat(FormatMsg{Layout: audio.LayoutStereo, SampleRate: 48000, BitsPerSample: 16})
	model.showDebug = true

	view := model.View()
	for _, want := range []string{"48000 Hz", "Stereo", "s16le", "5512,8000"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestTruncateFunction(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly ten c", 14, "exactly ten c"},
		{"this is longer than allowed", 10, "this is..."},
		{"this is longer than allowed", 15, "this is long..."},
		{"", 10, ""},
		{"abc", 3, "abc"},
		{"abcde", 4, "a..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q",
				tt.input, tt.maxLen, result, tt.expected)
		}
	}
}

func TestChannelNameFunction(t *testing.T) {
	tests := []struct {
		layout   audio.Layout
		expected string
	}{
		{nil, "-"},
		{audio.LayoutMono, "Mono"},
		{audio.LayoutStereo, "Stereo"},
		{audio.Layout51, "6 ch (FL,FR,FC,LFE,BL,BR)"},
	}

	for _, tt := range tests {
		result := channelName(tt.layout)
		if result != tt.expected {
			t.Errorf("channelName(%v) = %q, expected %q", tt.layout, result, tt.expected)
		}
	}
}

// NOTE: no concurrency test here; Bubble Tea calls Update sequentially.
