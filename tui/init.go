package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the discovery of a file given up front, or the file prompt.
func (b *statefulBubble) Init() tea.Cmd {
	switch b.state {
	case loadingState:
		return tea.Batch(b.spinnerC.Tick, b.discover(b.file))
	case inputState:
		return textinput.Blink
	default:
		return nil
	}
}
