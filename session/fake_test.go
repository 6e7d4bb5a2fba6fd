package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"syscall"

	"github.com/multitracks/multitracks/player"
)

type fakeProcess struct {
	pid    int
	exited chan struct{}
	killed bool
}

func (p *fakeProcess) Pid() int                { return p.pid }
func (p *fakeProcess) Exited() <-chan struct{} { return p.exited }
func (p *fakeProcess) Kill() error {
	p.killed = true
	return nil
}

type fakeLauncher struct {
	specs     []player.LaunchSpec
	processes []*fakeProcess

	// failAt makes the launch of that stream index fail; -1 never fails.
	failAt int
}

func newFakeLauncher() *fakeLauncher {
	return &fakeLauncher{failAt: -1}
}

func (l *fakeLauncher) Launch(_ context.Context, spec player.LaunchSpec) (player.Process, error) {
	if len(l.specs) == l.failAt {
		return nil, errors.New("executable not found")
	}

	l.specs = append(l.specs, spec)
	p := &fakeProcess{pid: 1000 + len(l.processes), exited: make(chan struct{})}
	l.processes = append(l.processes, p)
	return p, nil
}

type sent struct {
	Port int
	Line string
}

type fakeCommander struct {
	mu sync.Mutex

	sent    []sent
	queries []sent

	// replies are get_time answers per port.
	replies map[int]string

	// refused ports behave as if nothing listens on them.
	refused map[int]bool

	// broken ports fail with a non-refusal transport error.
	broken map[int]bool
}

func newFakeCommander() *fakeCommander {
	return &fakeCommander{
		replies: make(map[int]string),
		refused: make(map[int]bool),
		broken:  make(map[int]bool),
	}
}

func (f *fakeCommander) fail(port int) error {
	if f.refused[port] {
		return fmt.Errorf("connect localhost:%d: %w", port, syscall.ECONNREFUSED)
	}
	if f.broken[port] {
		return fmt.Errorf("write: %w", syscall.EPIPE)
	}
	return nil
}

func (f *fakeCommander) Send(_ context.Context, port int, line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail(port); err != nil {
		return err
	}
	f.sent = append(f.sent, sent{Port: port, Line: line})
	return nil
}

func (f *fakeCommander) Query(_ context.Context, port int, line string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail(port); err != nil {
		return "", err
	}
	f.queries = append(f.queries, sent{Port: port, Line: line})
	return f.replies[port], nil
}

func (f *fakeCommander) lines() []sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sent(nil), f.sent...)
}

func (f *fakeCommander) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
	f.queries = nil
}
