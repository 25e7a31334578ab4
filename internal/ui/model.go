// ABOUTME: Bubbletea model for the bridge status TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/retroplayer/audiobridge/internal/app"
	"github.com/retroplayer/audiobridge/internal/version"
	"github.com/retroplayer/audiobridge/pkg/audio"
)

// Model represents the TUI state
type Model struct {
	// Session
	sessionID  string
	sourceName string
	state      string
	lastErr    string

	// Stream, as reported by the bridge
	open          bool
	sampleFormat  string
	sampleRate    int
	layout        audio.Layout
	bitsPerSample int

	// Playback
	muted bool

	// Stats
	forwarded    int64
	dropped      int64
	truncated    int64
	ingestErrors int64
	opened       int64
	closed       int64

	rates []int

	controls *Controls

	// Debug
	showDebug bool

	// Dimensions
	width  int
	height int
}

// StatusMsg carries a session snapshot
type StatusMsg struct {
	Status app.Status
}

// FormatMsg carries one metadata report; zero fields are ignored
type FormatMsg struct {
	Layout        audio.Layout
	SampleRate    int
	BitsPerSample int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg.Status)
	case FormatMsg:
		m.applyFormat(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderStreamInfo()
	s += m.renderControls()
	s += m.renderStats()

	if m.showDebug {
		s += m.renderDebug()
	}

	s += m.renderHelp()

	return s
}

// renderHeader renders session state
func (m Model) renderHeader() string {
	status := m.state
	if m.lastErr != "" {
		status = fmt.Sprintf("%s: %s", m.state, m.lastErr)
	}

	return fmt.Sprintf(`┌─ %-50s ┐
│ Source: %-44s │
│ Status: %-44s │
├──────────────────────────────────────────────────────┤
`, version.Product+" "+version.Version, truncate(m.sourceName, 44), truncate(status, 44))
}

// renderStreamInfo renders the effective stream format
func (m Model) renderStreamInfo() string {
	if !m.open {
		return "│ No stream                                            │\n"
	}

	s := "│ Stream:                                              │\n"
	s += fmt.Sprintf("│   Format:   %-40s │\n", m.sampleFormat)
	s += fmt.Sprintf("│   Rate:     %-40s │\n", fmt.Sprintf("%d Hz", m.sampleRate))
	s += fmt.Sprintf("│   Channels: %-40s │\n", truncate(channelName(m.layout), 40))
	s += fmt.Sprintf("│   Bits:     %-40d │\n", m.bitsPerSample)

	return s
}

// renderControls renders mute state
func (m Model) renderControls() string {
	audioState := "On"
	if m.muted {
		audioState = "Muted 🔇"
	}

	return fmt.Sprintf("│                                                      │\n"+
		"│ Audio:  %-44s │\n", audioState)
}

// renderStats renders relay statistics
func (m Model) renderStats() string {
	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Stats:  Frames: %-10d Dropped: %-10d        │
│         Truncated: %-7d Errors: %-11d        │
│                                                      │
`, m.forwarded, m.dropped, m.truncated, m.ingestErrors)
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ m:Mute  d:Debug  q:Quit                              │
└──────────────────────────────────────────────────────┘
`
}

// renderDebug renders debug information
func (m Model) renderDebug() string {
	rates := make([]string, len(m.rates))
	for i, r := range m.rates {
		rates[i] = fmt.Sprint(r)
	}

	return fmt.Sprintf(`│ DEBUG:                                               │
│   Session: %-41s │
│   Streams: %-41s │
│   Rates:   %-41s │
`, truncate(m.sessionID, 41),
		fmt.Sprintf("%d opened, %d closed", m.opened, m.closed),
		truncate(strings.Join(rates, ","), 41))
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.controls != nil {
			select {
			case m.controls.Quit <- struct{}{}:
			default:
			}
		}
		return m, tea.Quit
	case "m":
		m.muted = !m.muted
		if m.controls != nil {
			select {
			case m.controls.Mute <- m.muted:
			default:
			}
		}
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// applyStatus updates model from a session snapshot
func (m *Model) applyStatus(st app.Status) {
	if st.ID != "" {
		m.sessionID = st.ID
	}
	if st.Source != "" {
		m.sourceName = st.Source
	}
	if st.State != "" {
		m.state = string(st.State)
	}
	m.lastErr = ""
	if st.Err != nil {
		m.lastErr = st.Err.Error()
	}

	m.open = st.Open
	if st.Open {
		m.sampleFormat = st.Format.SampleFormat.String()
	}
	m.muted = !st.Enabled

	m.forwarded = st.Stats.FramesForwarded
	m.dropped = st.Stats.BuffersDropped
	m.truncated = st.Stats.BytesTruncated
	m.ingestErrors = st.Stats.IngestErrors
	m.opened = st.Stats.StreamsOpened
	m.closed = st.Stats.StreamsClosed
}

// applyFormat updates model from a metadata report
func (m *Model) applyFormat(msg FormatMsg) {
	if msg.Layout != nil {
		m.layout = msg.Layout
	}
	if msg.SampleRate != 0 {
		m.sampleRate = msg.SampleRate
	}
	if msg.BitsPerSample != 0 {
		m.bitsPerSample = msg.BitsPerSample
	}
}

// Utility functions
func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(layout audio.Layout) string {
	switch layout.Count() {
	case 0:
		return "-"
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	}
	return fmt.Sprintf("%d ch (%s)", layout.Count(), layout)
}
