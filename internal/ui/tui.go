// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the bridge status view
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Controls holds channels for key presses the session acts on
type Controls struct {
	Mute chan bool
	Quit chan struct{}
}

// NewControls creates a new control handler
func NewControls() *Controls {
	return &Controls{
		Mute: make(chan bool, 10),
		Quit: make(chan struct{}, 1),
	}
}

// NewModel creates a new TUI model
func NewModel(ctrl *Controls, rates []int, muted bool) Model {
	return Model{
		state:    "idle",
		rates:    rates,
		muted:    muted,
		controls: ctrl,
	}
}

// NewProgram creates the TUI program. It does not touch the terminal
// until the caller runs it.
func NewProgram(ctrl *Controls, rates []int, muted bool) *tea.Program {
	return tea.NewProgram(NewModel(ctrl, rates, muted), tea.WithAltScreen())
}
