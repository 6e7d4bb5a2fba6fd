package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/multitracks/multitracks/history"
	"github.com/multitracks/multitracks/log"
	"github.com/multitracks/multitracks/session"
	"github.com/samber/lo"
)

type discoveredMsg struct {
	discovery *session.Discovery
}

type launchedMsg struct {
	session     *session.Session
	positions   <-chan session.Position
	unsubscribe func()
	resumed     int

	// unreachable streams refused play; the others are playing.
	unreachable []*session.UnreachableError
}

type positionMsg session.Position

type actionMsg struct {
	command session.Command
	err     error
}

// loadHistory fills the history list and reports whether any session was saved.
func (b *statefulBubble) loadHistory() (bool, error) {
	saved, err := history.Get()
	if err != nil {
		return false, err
	}

	sessions := lo.Values(saved)
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].SavedAt.After(sessions[j].SavedAt)
	})

	items := lo.Map(sessions, func(s *history.SavedSession, _ int) list.Item {
		return &listItem{internal: s}
	})
	b.historyC.SetItems(items)

	b.inputC.SetSuggestions(lo.Map(sessions, func(s *history.SavedSession, _ int) string {
		return s.File
	}))

	return len(items) > 0, nil
}

// discover inspects file and lists the output devices.
func (b *statefulBubble) discover(file string) tea.Cmd {
	ctx, inspector, catalog := b.ctx, b.inspector, b.catalog

	b.busy = true
	b.progressStatus = fmt.Sprintf("Inspecting %s", filepath.Base(file))

	return func() tea.Msg {
		d, err := session.Discover(ctx, inspector, catalog, file)
		if err != nil {
			return err
		}
		return discoveredMsg{discovery: d}
	}
}

// launch starts the session, plays it and seeks to resume when positive.
// The session is quit only when no stream accepted play.
func (b *statefulBubble) launch(req session.Request, resume int) tea.Cmd {
	ctx, c, launches := b.ctx, b.controller, b.launches

	return func() tea.Msg {
		if !launches.begin() {
			return nil
		}
		defer launches.end()

		s, err := c.Launch(ctx, req)
		if err != nil {
			return err
		}

		positions, unsubscribe := c.Subscribe()

		played := c.Play(ctx)
		if !session.StillPlaying(played, len(s.Streams)) {
			unsubscribe()
			_ = c.Quit(context.Background())
			return played
		}

		if resume > 0 {
			if err := c.Seek(ctx, resume); err != nil {
				log.Warnf("resume at %s: %v", session.FormatTime(resume), err)
				resume = 0
			}
		}

		return launchedMsg{
			session:     s,
			positions:   positions,
			unsubscribe: unsubscribe,
			resumed:     resume,
			unreachable: session.Unreachable(played),
		}
	}
}

// inflight tracks launches so the program can wait for them before quitting the session.
type inflight struct {
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// begin registers a launch; it fails once wait was called.
func (f *inflight) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false
	}
	f.wg.Add(1)
	return true
}

func (f *inflight) end() {
	f.wg.Done()
}

// wait refuses new launches and blocks until the running ones return.
func (f *inflight) wait() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()

	f.wg.Wait()
}

// dispatch runs command against the session off the update loop.
func (b *statefulBubble) dispatch(command session.Command) tea.Cmd {
	ctx, c := b.ctx, b.controller

	return func() tea.Msg {
		return actionMsg{command: command, err: c.Dispatch(ctx, command)}
	}
}

func waitForPosition(positions <-chan session.Position) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-positions
		if !ok {
			return nil
		}
		return positionMsg(p)
	}
}
