// ABOUTME: Bridge metadata reporter for the TUI
// ABOUTME: Forwards effective stream format reports as bubbletea messages
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/retroplayer/audiobridge/pkg/audio"
)

// Reporter forwards bridge metadata to a running TUI
type Reporter struct {
	send func(tea.Msg)
}

// NewReporter creates a reporter sending to p
func NewReporter(p *tea.Program) *Reporter {
	return &Reporter{send: p.Send}
}

// ReportChannels sends the channel layout
func (r *Reporter) ReportChannels(layout audio.Layout) {
	r.send(FormatMsg{Layout: layout})
}

// ReportSampleRate sends the sample rate
func (r *Reporter) ReportSampleRate(rate int) {
	r.send(FormatMsg{SampleRate: rate})
}

// ReportBitsPerSample sends the bit depth
func (r *Reporter) ReportBitsPerSample(bits int) {
	r.send(FormatMsg{BitsPerSample: bits})
}
