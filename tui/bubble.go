package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/multitracks/multitracks/device"
	"github.com/multitracks/multitracks/history"
	"github.com/multitracks/multitracks/internal/ui"
	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/log"
	"github.com/multitracks/multitracks/media"
	"github.com/multitracks/multitracks/session"
	"github.com/multitracks/multitracks/style"
	"github.com/multitracks/multitracks/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble encapsulates the application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	// busy blocks input while a discovery or launch is in flight.
	busy bool

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	historyC  list.Model
	tracksC   list.Model
	devicesC  list.Model
	progressC progress.Model
	helpC     help.Model

	ctx        context.Context
	controller *session.Controller
	inspector  media.Inspector
	catalog    device.Catalog

	file      string
	discovery *session.Discovery
	resume    mo.Option[*history.SavedSession]

	// requests holds one assignment per stream while they are chosen; stream is the one being edited.
	requests []session.StreamRequest
	stream   int

	launches *inflight

	session     *session.Session
	positions   <-chan session.Position
	unsubscribe func()
	unreachable map[int]bool
	position    session.Position
	paused      bool
	selected    int

	progressStatus string
	lastError      error

	width, height int
	notifier      *ui.Model
}

// raiseError records err and transitions to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.busy = false
	b.newState(errorState)
}

// setState switches both the workflow state and the keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, recording the current state for back navigation unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains(transient, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the state recorded before the current one.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range []*list.Model{&b.historyC, &b.tracksC, &b.devicesC} {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	b.width = width - x
	b.height = height - y
	b.progressC.Width = b.width
	b.inputC.Width = b.width
	b.helpC.Width = listWidth
}

// finish saves and quits a session left running when the program ends.
func (b *statefulBubble) finish() {
	if b.unsubscribe != nil {
		b.unsubscribe()
	}

	if !b.controller.Active() {
		return
	}

	if s, ok := b.controller.Session().Get(); ok {
		position := b.controller.Position().OrElse(b.position).Seconds
		if err := history.Save(s, position); err != nil {
			log.Warnf("save history: %v", err)
		}
	}

	_ = b.controller.Quit(context.Background())
}

// selectStream makes i the stream whose track and device are being chosen.
func (b *statefulBubble) selectStream(i int) {
	b.stream = i
	request := b.requests[i]
	n := len(b.requests)

	b.tracksC.Title = fmt.Sprintf("Audio track for stream %d of %d", i+1, n)
	b.tracksC.Select(request.Track)

	// items taken by the other streams are marked
	others := lo.Reject(b.requests, func(_ session.StreamRequest, j int) bool {
		return j == i
	})
	for _, item := range b.tracksC.Items() {
		t := item.(*listItem)
		t.marked = lo.ContainsBy(others, func(r session.StreamRequest) bool {
			return r.Track == t.internal.(media.Track).Index
		})
	}
	for _, item := range b.devicesC.Items() {
		d := item.(*listItem)
		d.marked = lo.ContainsBy(others, func(r session.StreamRequest) bool {
			return r.Device == d.internal.(device.Device).ID
		})
	}

	b.devicesC.Title = fmt.Sprintf("Output device for stream %d of %d", i+1, n)
	if _, index, ok := lo.FindIndexOf(b.discovery.Devices, func(d device.Device) bool {
		return d.ID == request.Device
	}); ok {
		b.devicesC.Select(index)
	}
}

func newBubble(ctx context.Context, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		ctx:        ctx,
		controller: options.Controller,
		inspector:  options.Inspector,
		catalog:    options.Catalog,
		launches:   &inflight{},

		notifier: &ui.Model{},
	}

	makeList := func(title string, description bool, titleColor lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(titleColor).Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "/path/to/video.mkv"
	bubble.inputC.Prompt = "> "
	bubble.inputC.ShowSuggestions = true

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.historyC = makeList("Recent Sessions", true, style.Yellow)
	bubble.historyC.SetStatusBarItemName("session", "sessions")

	bubble.tracksC = makeList("Audio Tracks", true, style.Lavender)
	bubble.tracksC.SetStatusBarItemName("track", "tracks")

	bubble.devicesC = makeList("Output Devices", true, style.Peach)
	bubble.devicesC.SetStatusBarItemName("device", "devices")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble
}
