package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/multitracks/multitracks/color"
	"github.com/multitracks/multitracks/icon"
	"github.com/multitracks/multitracks/session"
	"github.com/multitracks/multitracks/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState, launchingState:
		output = b.viewLoading()
	case historyState:
		output = listExtraPaddingStyle.Render(b.historyC.View())
	case inputState:
		output = b.viewInput()
	case tracksState:
		output = listExtraPaddingStyle.Render(b.tracksC.View())
	case devicesState:
		output = listExtraPaddingStyle.Render(b.devicesC.View())
	case playbackState:
		output = b.viewPlayback()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	title := "Loading"
	if b.state == launchingState {
		title = "Launching"
	}

	return b.renderLines(
		true,
		[]string{
			style.Title(title),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewInput() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Open File"),
			"",
			b.inputC.View(),
		},
	)
}

func (b *statefulBubble) viewPlayback() string {
	s := b.session

	percent := 0.0
	if s.Duration > 0 {
		percent = float64(b.position.Seconds) / float64(s.Duration)
	}

	status := icon.Get(icon.Play)
	if b.paused {
		status = icon.Get(icon.Pause)
	}

	clock := fmt.Sprintf(
		"%s %s / %s",
		status,
		style.Bold(session.FormatTime(b.position.Seconds)),
		session.FormatTime(s.Duration),
	)
	if b.paused {
		clock += " " + style.Fg(color.Yellow)("paused")
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s", icon.Get(icon.Video), style.Fg(color.Purple)(filepath.Base(s.File)))),
		"",
		b.progressC.ViewAs(percent),
		clock,
		"",
	}

	for i, stream := range s.Streams {
		lines = append(lines, style.Truncate(b.width)(b.renderStream(stream, i == b.selected)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) renderStream(stream *session.Stream, selected bool) string {
	marker := "  "
	if selected {
		marker = lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Mark)) + " "
	}

	if b.unreachable[stream.Index] {
		return fmt.Sprintf(
			"%s%s %s  %s %s  %s",
			marker,
			style.Bold(fmt.Sprintf("%d", stream.Index+1)),
			style.Faint(fmt.Sprintf(":%d", stream.Port)),
			icon.Get(icon.Device),
			stream.Device.String(),
			style.Fg(color.Red)("unreachable"),
		)
	}

	return fmt.Sprintf(
		"%s%s %s  %s %s  %s %s  %s %s %3d%%",
		marker,
		style.Bold(fmt.Sprintf("%d", stream.Index+1)),
		style.Faint(fmt.Sprintf(":%d", stream.Port)),
		icon.Get(icon.Track),
		b.session.TrackLabel(stream),
		icon.Get(icon.Device),
		stream.Device.String(),
		icon.Get(icon.Volume),
		style.Meter(stream.Volume, session.MaxVolume, 10),
		stream.Volume,
	)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	lines := []string{
		style.ErrorTitle("Error"),
		"",
	}

	// joined errors are listed one per line
	for _, line := range strings.Split(b.lastError.Error(), "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		lines = append(lines, wrap.String(icon.Get(icon.Fail)+" "+errorStyle.Render(line), b.width))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
