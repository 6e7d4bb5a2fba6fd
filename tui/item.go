package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/multitracks/multitracks/device"
	"github.com/multitracks/multitracks/history"
	"github.com/multitracks/multitracks/icon"
	"github.com/multitracks/multitracks/media"
	"github.com/multitracks/multitracks/session"
	"github.com/multitracks/multitracks/style"
	"github.com/multitracks/multitracks/util"
)

// listItem implements the list.Item interface, wrapping domain models for terminal display.
type listItem struct {
	internal any
	marked   bool
}

func (t *listItem) getMark() string {
	return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Mark))
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case media.Track:
		title = fmt.Sprintf("%d. %s", e.Index, e.Label)
	case device.Device:
		title = e.String()
	case *history.SavedSession:
		title = util.FileStem(e.File)
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

// Description retrieves the secondary metadata for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case media.Track:
		var parts []string

		if e.Language != media.UnknownLanguage {
			parts = append(parts, e.Language)
		}
		if e.Codec != "" {
			parts = append(parts, e.Codec)
		}
		if e.Channels > 0 {
			parts = append(parts, util.Quantify(e.Channels, "channel", "channels"))
		}

		description = strings.Join(parts, " • ")
	case device.Device:
		description = style.Faint(e.ID)
	case *history.SavedSession:
		description = fmt.Sprintf(
			"%s • %s • %s",
			lipgloss.NewStyle().Foreground(style.AccentColor).Render(session.FormatTime(e.Position)),
			util.Quantify(len(e.Streams), "stream", "streams"),
			lipgloss.NewStyle().Foreground(style.FaintColor).Render(e.SavedAt.Format("2006-01-02 15:04")),
		)
	}

	return
}

// FilterValue returns the string used for list filtering.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case media.Track:
		return e.Label
	case device.Device:
		return e.Name + " " + e.ID
	case *history.SavedSession:
		return e.File
	case string:
		return e
	default:
		return ""
	}
}
