// Package inline runs a playback session without the terminal interface.
//
// Positions are written to the output as text or JSON lines, and command lines
// read from the input are handed to the controller's dispatch table.
package inline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/multitracks/multitracks/constant"
	"github.com/multitracks/multitracks/history"
	"github.com/multitracks/multitracks/log"
	"github.com/multitracks/multitracks/session"
)

var statusTemplate = template.Must(template.New("status").Parse(constant.StatusTemplate))

type status struct {
	Elapsed  string
	Duration string
	Paused   bool
}

// Run launches the requested session, plays it and serves commands until quit,
// end of input or cancellation of ctx. The session is always quit before returning.
func Run(ctx context.Context, c *session.Controller, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Err == nil {
		options.Err = os.Stderr
	}

	s, err := c.Launch(ctx, options.Request)
	if err != nil {
		return err
	}

	positions, unsubscribe := c.Subscribe()
	defer unsubscribe()

	defer func() {
		last := c.Position().OrElse(session.Position{}).Seconds
		if err := history.Save(s, last); err != nil {
			log.Warnf("save history: %v", err)
		}
	}()

	if options.Json {
		if err := writeJson(options.Out, sessionEvent(s)); err != nil {
			_ = c.Quit(context.Background())
			return err
		}
	}

	// streams that refused play are reported and the others keep playing
	if err := c.Play(ctx); err != nil {
		if !session.StillPlaying(err, len(s.Streams)) {
			_ = c.Quit(context.Background())
			return err
		}

		for _, unreachable := range session.Unreachable(err) {
			report(options, s, unreachable)
		}
	}

	if resume, ok := options.Resume.Get(); ok && resume > 0 {
		if err := c.Seek(ctx, resume); err != nil {
			report(options, s, err)
		}
	}

	done := make(chan struct{})
	defer close(done)

	lines := readLines(options.In, done)

	for {
		select {
		case <-ctx.Done():
			return quit(c, options, s)

		case p := <-positions:
			if err := writePosition(options, s, p, c.Paused()); err != nil {
				_ = c.Quit(context.Background())
				return err
			}

		case line, ok := <-lines:
			if !ok {
				return quit(c, options, s)
			}

			if strings.TrimSpace(line) == "" {
				continue
			}

			cmd, err := session.ParseCommand(line)
			if err != nil {
				report(options, s, err)
				continue
			}

			if cmd.Action == session.ActionQuit {
				return quit(c, options, s)
			}

			if err := c.Dispatch(ctx, cmd); err != nil {
				report(options, s, err)
			}
		}
	}
}

func quit(c *session.Controller, options *Options, s *session.Session) error {
	// ctx may already be cancelled; quit must still reach the players.
	if err := c.Quit(context.Background()); err != nil {
		return err
	}

	if options.Json {
		position := c.Position().OrElse(session.Position{})
		return writeJson(options.Out, newEvent(EventQuit, s, position, false))
	}

	return nil
}

func writePosition(options *Options, s *session.Session, p session.Position, paused bool) error {
	if options.Json {
		return writeJson(options.Out, newEvent(EventPosition, s, p, paused))
	}

	if err := statusTemplate.Execute(options.Out, status{
		Elapsed:  session.FormatTime(p.Seconds),
		Duration: session.FormatTime(s.Duration),
		Paused:   paused,
	}); err != nil {
		return err
	}

	_, err := fmt.Fprintln(options.Out)
	return err
}

func report(options *Options, s *session.Session, err error) {
	log.Warn(err)

	if options.Json {
		event := newEvent(EventError, s, session.Position{}, false)
		event.Origin = ""
		event.Error = err.Error()
		_ = writeJson(options.Out, event)
		return
	}

	fmt.Fprintf(options.Err, "error: %s\n", err)
}

// readLines streams the lines of in until done is closed. The channel is closed at end of input.
// A nil reader yields a channel that never delivers.
func readLines(in io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	if in == nil {
		return lines
	}

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}

		if err := scanner.Err(); err != nil {
			log.Warnf("read commands: %v", err)
		}
	}()

	return lines
}
