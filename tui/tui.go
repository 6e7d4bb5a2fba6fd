// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/multitracks/multitracks/config"
	"github.com/multitracks/multitracks/device"
	"github.com/multitracks/multitracks/history"
	"github.com/multitracks/multitracks/internal/ui"
	"github.com/multitracks/multitracks/log"
	"github.com/multitracks/multitracks/media"
	"github.com/multitracks/multitracks/session"
	"github.com/samber/mo"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Continue resumes the most recently saved session.
	Continue bool

	// File skips the file prompt when set.
	File string

	Controller *session.Controller
	Inspector  media.Inspector
	Catalog    device.Catalog
}

// Run initializes and executes the primary Bubble Tea application loop.
// A session still running when the loop ends is saved to history and quit.
func Run(options *Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bubble := newBubble(ctx, options)

	switch {
	case options.Continue:
		last, err := history.Last()
		if err != nil {
			return err
		}

		saved, ok := last.Get()
		if !ok {
			return errors.New("no saved session to continue")
		}

		bubble.resume = mo.Some(saved)
		bubble.file = saved.File
		bubble.setState(loadingState)
	case options.File != "":
		file, err := filepath.Abs(options.File)
		if err != nil {
			return err
		}

		bubble.file = file
		bubble.setState(loadingState)
	default:
		found, err := bubble.loadHistory()
		if err != nil {
			return err
		}

		if found {
			bubble.setState(historyState)
		} else {
			bubble.setState(inputState)
		}
	}

	program := tea.NewProgram(bubble, tea.WithAltScreen())

	config.Watch(func(path string) {
		log.Infof("config reloaded from %s", path)
		program.Send(ui.NotifyConfigReloaded(path))
	})

	_, err := program.Run()

	// a launch still settling gives up and kills its players
	cancel()
	bubble.launches.wait()

	bubble.finish()
	return err
}
