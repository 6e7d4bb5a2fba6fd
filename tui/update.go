package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/multitracks/multitracks/device"
	"github.com/multitracks/multitracks/filesystem"
	"github.com/multitracks/multitracks/history"
	"github.com/multitracks/multitracks/internal/ui"
	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/media"
	"github.com/multitracks/multitracks/session"
	"github.com/multitracks/multitracks/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}

		if b.busy {
			return b, cmd
		}

		if bubblesKey.Matches(msg, b.keymap.back) && b.state != playbackState {
			if b.filtering() {
				break
			}

			if b.state == tracksState && b.stream > 0 {
				b.selectStream(b.stream - 1)
			}

			b.previousState()
			return b, cmd
		}
	}

	var stateCmd tea.Cmd
	switch b.state {
	case loadingState:
		stateCmd = b.updateLoading(msg)
	case historyState:
		stateCmd = b.updateHistory(msg)
	case inputState:
		stateCmd = b.updateInput(msg)
	case tracksState:
		stateCmd = b.updateTracks(msg)
	case devicesState:
		stateCmd = b.updateDevices(msg)
	case launchingState:
		stateCmd = b.updateLaunching(msg)
	case playbackState:
		stateCmd = b.updatePlayback(msg)
	case errorState:
		stateCmd = b.updateError(msg)
	}

	return b, tea.Batch(cmd, stateCmd)
}

func (b *statefulBubble) filtering() bool {
	switch b.state {
	case historyState:
		return b.historyC.FilterState() != list.Unfiltered
	case tracksState:
		return b.tracksC.FilterState() != list.Unfiltered
	case devicesState:
		return b.devicesC.FilterState() != list.Unfiltered
	default:
		return false
	}
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	case discoveredMsg:
		return b.onDiscovered(msg.discovery)
	}

	return nil
}

// onDiscovered starts the assignment of tracks and devices, or launches a resumed session directly.
func (b *statefulBubble) onDiscovered(d *session.Discovery) tea.Cmd {
	b.busy = false
	b.discovery = d

	if saved, ok := b.resume.Get(); ok {
		b.resume = mo.None[*history.SavedSession]()
		return b.startLaunch(saved.Requests(), saved.Position)
	}

	if len(d.Devices) == 0 {
		b.raiseError(fmt.Errorf("no audio output devices found, declare them with %s", key.DevicesStatic))
		return nil
	}

	n := viper.GetInt(key.PlayerStreams)
	if n < 1 {
		b.raiseError(errors.New("at least one stream is required"))
		return nil
	}

	b.requests = session.DefaultRequests(n, len(d.Info.Tracks), d.Devices)

	b.tracksC.SetItems(lo.Map(d.Info.Tracks, func(t media.Track, _ int) list.Item {
		return &listItem{internal: t}
	}))
	b.devicesC.SetItems(lo.Map(d.Devices, func(dev device.Device, _ int) list.Item {
		return &listItem{internal: dev}
	}))

	b.selectStream(0)
	b.newState(tracksState)
	return nil
}

func (b *statefulBubble) updateHistory(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if b.filtering() {
			break
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.historyC.SelectedItem().(*listItem)
			if !ok {
				return nil
			}

			saved := item.internal.(*history.SavedSession)
			b.resume = mo.Some(saved)
			b.file = saved.File
			b.newState(loadingState)
			return tea.Batch(b.spinnerC.Tick, b.discover(saved.File))
		case bubblesKey.Matches(msg, b.keymap.remove):
			item, ok := b.historyC.SelectedItem().(*listItem)
			if !ok {
				return nil
			}

			saved := item.internal.(*history.SavedSession)
			if err := history.Remove(saved.File); err != nil {
				return ui.Notify(err.Error())
			}

			b.historyC.RemoveItem(b.historyC.Index())
			if len(b.historyC.Items()) == 0 {
				b.newState(inputState)
				return textinput.Blink
			}
			return ui.Notify("Removed " + filepath.Base(saved.File))
		case bubblesKey.Matches(msg, b.keymap.openFile):
			b.newState(inputState)
			return textinput.Blink
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateInput(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.confirm) {
			value := strings.TrimSpace(b.inputC.Value())
			if value == "" {
				return nil
			}

			file, err := filepath.Abs(value)
			if err != nil {
				return ui.Notify(err.Error())
			}

			if stat, err := filesystem.API().Stat(file); err != nil {
				return ui.Notify(fmt.Sprintf("%s does not exist", file))
			} else if stat.IsDir() {
				return ui.Notify(fmt.Sprintf("%s is a directory", file))
			}

			b.file = file
			b.newState(loadingState)
			return tea.Batch(b.spinnerC.Tick, b.discover(file))
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateTracks(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !b.filtering() && bubblesKey.Matches(msg, b.keymap.confirm) {
			item, ok := b.tracksC.SelectedItem().(*listItem)
			if !ok {
				return nil
			}

			b.requests[b.stream].Track = item.internal.(media.Track).Index
			b.selectStream(b.stream)
			b.newState(devicesState)
			return nil
		}
	}

	var cmd tea.Cmd
	b.tracksC, cmd = b.tracksC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateDevices(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !b.filtering() && bubblesKey.Matches(msg, b.keymap.confirm) {
			item, ok := b.devicesC.SelectedItem().(*listItem)
			if !ok {
				return nil
			}

			b.requests[b.stream].Device = item.internal.(device.Device).ID

			if b.stream+1 < len(b.requests) {
				b.selectStream(b.stream + 1)
				b.newState(tracksState)
				return nil
			}

			return b.startLaunch(b.requests, 0)
		}
	}

	var cmd tea.Cmd
	b.devicesC, cmd = b.devicesC.Update(msg)
	return cmd
}

func (b *statefulBubble) startLaunch(requests []session.StreamRequest, resume int) tea.Cmd {
	req := b.discovery.Request(requests)

	b.busy = true
	b.progressStatus = fmt.Sprintf("Launching %s", util.Quantify(len(requests), "player", "players"))
	b.newState(launchingState)

	return tea.Batch(b.spinnerC.Tick, b.launch(req, resume))
}

func (b *statefulBubble) updateLaunching(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return cmd
	case launchedMsg:
		b.busy = false
		b.session = msg.session
		b.positions = msg.positions
		b.unsubscribe = msg.unsubscribe
		b.position = session.Position{Seconds: msg.resumed, Origin: session.OriginUser}
		b.paused = false
		b.selected = 0

		b.unreachable = make(map[int]bool)
		for _, u := range msg.unreachable {
			b.unreachable[u.Stream] = true
		}

		// playback is the end of the workflow
		b.statesHistory.Clear()
		b.newState(playbackState)

		if len(msg.unreachable) == 0 {
			return waitForPosition(b.positions)
		}

		reasons := lo.Map(msg.unreachable, func(u *session.UnreachableError, _ int) string {
			return u.Error()
		})
		return tea.Batch(waitForPosition(b.positions), ui.Notify(strings.Join(reasons, "; ")))
	}

	return nil
}

func (b *statefulBubble) updatePlayback(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case positionMsg:
		b.position = session.Position(msg)
		return waitForPosition(b.positions)
	case actionMsg:
		if s, ok := b.controller.Session().Get(); ok {
			b.session = s
		}
		b.paused = b.controller.Paused()

		if msg.err != nil {
			return ui.Notify(msg.err.Error())
		}
	case tea.KeyMsg:
		var (
			seekStep   = viper.GetInt(key.TUISeekStep)
			volumeStep = viper.GetInt(key.TUIVolumeStep)
		)

		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return tea.Quit
		case bubblesKey.Matches(msg, b.keymap.playPause):
			if b.paused {
				return b.dispatch(session.Command{Action: session.ActionPlay})
			}
			return b.dispatch(session.Command{Action: session.ActionPause})
		case bubblesKey.Matches(msg, b.keymap.seekBackward):
			return b.dispatch(session.Command{Action: session.ActionSeekRelative, Value: -seekStep})
		case bubblesKey.Matches(msg, b.keymap.seekForward):
			return b.dispatch(session.Command{Action: session.ActionSeekRelative, Value: seekStep})
		case bubblesKey.Matches(msg, b.keymap.nextStream):
			b.selected = (b.selected + 1) % len(b.session.Streams)
		case bubblesKey.Matches(msg, b.keymap.volumeUp):
			return b.dispatch(session.Command{Action: session.ActionVolumeRelative, Stream: b.selected, Value: volumeStep})
		case bubblesKey.Matches(msg, b.keymap.volumeDown):
			return b.dispatch(session.Command{Action: session.ActionVolumeRelative, Stream: b.selected, Value: -volumeStep})
		}
	}

	return nil
}

func (b *statefulBubble) updateError(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.quit) {
			return tea.Quit
		}
	}

	return nil
}
