package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/multitracks/multitracks/color"
	"github.com/multitracks/multitracks/style"
)

// statefulKeymap holds every binding; the state decides which ones are shown in help.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	confirm, play,
	remove, openFile,
	back,
	up, down, left, right,
	top, bottom,
	playPause, seekBackward, seekForward,
	nextStream, volumeUp, volumeDown,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

// bind creates a binding triggered by keys and shown in help as name and desc.
func bind(name, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(name, desc))
}

func newStatefulKeymap() *statefulKeymap {
	orange := style.Fg(color.Orange)

	return &statefulKeymap{
		quit:      bind("q", "quit", "q"),
		forceQuit: bind("ctrl+c", "quit", "ctrl+c", "ctrl+d"),
		confirm:   bind("enter", "confirm", "enter"),
		play:      bind(orange("enter"), orange("play"), "enter"),
		remove:    bind("d", "remove", "d"),
		openFile:  bind("o", "open another file", "o"),
		back:      bind("esc", "back", "esc"),

		up:     bind("↑", "up", "up", "k"),
		down:   bind("↓", "down", "down", "j"),
		left:   bind("←", "left", "left", "h"),
		right:  bind("→", "right", "right", "l"),
		top:    bind("g", "top", "g"),
		bottom: bind("G", "bottom", "G"),

		playPause:    bind("space", "pause/resume", " "),
		seekBackward: bind("←", "rewind", "left", "h"),
		seekForward:  bind("→", "forward", "right", "l"),
		nextStream:   bind("tab", "next stream", "tab"),
		volumeUp:     bind("+", "volume up", "+", "="),
		volumeDown:   bind("-", "volume down", "-", "_"),

		showHelp: bind("?", "help", "?"),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState, launchingState:
		return to2(h(k.forceQuit))
	case historyState:
		return h(k.play, k.openFile), h(k.play, k.remove, k.openFile)
	case inputState:
		return to2(h(k.confirm, k.back, k.forceQuit))
	case tracksState, devicesState:
		return to2(h(k.confirm, k.back))
	case playbackState:
		return h(k.playPause, k.seekBackward, k.seekForward, k.nextStream, k.quit),
			h(k.playPause, k.seekBackward, k.seekForward, k.nextStream, k.volumeUp, k.volumeDown, k.quit)
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		NextPage:      k.right,
		PrevPage:      k.left,
		GoToStart:     k.top,
		GoToEnd:       k.bottom,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		Quit:          k.quit,
		ForceQuit:     k.forceQuit,
	}
}
