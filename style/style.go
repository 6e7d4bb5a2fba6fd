// Package style provides a functional API for composing and applying lipgloss-based TUI styles.
package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/multitracks/multitracks/color"
)

// New returns an empty lipgloss.Style used as a foundation for visual composition.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored initializes a new style with the specified foreground and background colors.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a stateless rendering function that applies the specified foreground color to a string.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

// Truncate returns a rendering function that constrains the output string to a specified maximum width.
func Truncate(width int) func(string) string {
	return func(s string) string { return New().Width(width).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Title renders a banner heading a screen.
var Title = func(s string) string {
	return Colored(color.New("230"), color.New("62")).Padding(0, 1).Render(s)
}

// ErrorTitle renders a visually highlighted banner using dominant error status colors.
var ErrorTitle = func(s string) string {
	return Colored(color.New("230"), color.Red).Padding(0, 1).Render(s)
}

// Meter renders level out of top as a bar of width cells.
// Levels are clamped; the bar turns yellow above three quarters.
func Meter(level, top, width int) string {
	if top <= 0 || width <= 0 {
		return ""
	}

	level = min(max(level, 0), top)
	filled := level * width / top

	c := SuccessColor
	if level*4 > top*3 {
		c = WarningColor
	}

	return Fg(c)(strings.Repeat("█", filled)) + Fg(FaintColor)(strings.Repeat("░", width-filled))
}
