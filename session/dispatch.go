package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Action is a user-level playback action.
type Action int

const (
	ActionPlay Action = iota
	ActionPause
	ActionSeek
	ActionSeekRelative
	ActionVolume
	ActionVolumeRelative
	ActionTime
	ActionQuit
)

var actionNames = map[Action]string{
	ActionPlay:           "play",
	ActionPause:          "pause",
	ActionSeek:           "seek",
	ActionSeekRelative:   "seek relative",
	ActionVolume:         "volume",
	ActionVolumeRelative: "volume relative",
	ActionTime:           "time",
	ActionQuit:           "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Command is an action with its arguments.
type Command struct {
	Action Action

	// Stream is the zero-based stream index of volume actions.
	Stream int

	// Value is seconds for seeks and a level or delta for volume actions.
	Value int
}

func (c Command) String() string {
	switch c.Action {
	case ActionSeek:
		return fmt.Sprintf("seek %s", FormatTime(c.Value))
	case ActionSeekRelative:
		return fmt.Sprintf("seek %+d", c.Value)
	case ActionVolume:
		return fmt.Sprintf("volume %d %d", c.Stream+1, c.Value)
	case ActionVolumeRelative:
		return fmt.Sprintf("volume %d %+d", c.Stream+1, c.Value)
	default:
		return c.Action.String()
	}
}

type handler func(c *Controller, ctx context.Context, cmd Command) error

// handlers maps every action to the controller operation it triggers.
var handlers = map[Action]handler{
	ActionPlay: func(c *Controller, ctx context.Context, _ Command) error {
		return c.Play(ctx)
	},
	ActionPause: func(c *Controller, ctx context.Context, _ Command) error {
		return c.Pause(ctx)
	},
	ActionSeek: func(c *Controller, ctx context.Context, cmd Command) error {
		return c.Seek(ctx, cmd.Value)
	},
	ActionSeekRelative: func(c *Controller, ctx context.Context, cmd Command) error {
		return c.SeekRelative(ctx, cmd.Value)
	},
	ActionVolume: func(c *Controller, ctx context.Context, cmd Command) error {
		return c.SetVolume(ctx, cmd.Stream, cmd.Value)
	},
	ActionVolumeRelative: func(c *Controller, ctx context.Context, cmd Command) error {
		return c.AdjustVolume(ctx, cmd.Stream, cmd.Value)
	},
	ActionTime: func(c *Controller, ctx context.Context, _ Command) error {
		elapsed, err := c.CurrentTime(ctx)
		if err != nil {
			return err
		}
		if seconds, ok := elapsed.Get(); ok {
			c.publish(Position{Seconds: seconds, Origin: OriginSync})
		}
		return nil
	},
	ActionQuit: func(c *Controller, ctx context.Context, _ Command) error {
		return c.Quit(ctx)
	},
}

// Dispatch runs the controller operation bound to cmd.Action.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) error {
	h, ok := handlers[cmd.Action]
	if !ok {
		return invalid("command", "unknown action %s", cmd.Action)
	}

	c.mu.Lock()
	logger := c.logger
	c.mu.Unlock()

	logger.Debugf("dispatch %s", cmd)
	return h(c, ctx, cmd)
}

// ParseCommand reads the text form of a command:
//
//	play
//	pause
//	seek 120 | seek 01:02:05 | seek +10 | seek -10
//	volume 1 80 | volume 1 +5 | volume 1 -5
//	time
//	quit
//
// Streams are numbered from one.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, invalid("command", "empty command")
	}

	name, args := fields[0], fields[1:]

	want := func(n int) error {
		if len(args) != n {
			return invalid(name, "expected %d argument(s), got %d", n, len(args))
		}
		return nil
	}

	switch name {
	case "play", "pause", "time", "quit":
		if err := want(0); err != nil {
			return Command{}, err
		}
		return Command{Action: map[string]Action{
			"play":  ActionPlay,
			"pause": ActionPause,
			"time":  ActionTime,
			"quit":  ActionQuit,
		}[name]}, nil

	case "seek":
		if err := want(1); err != nil {
			return Command{}, err
		}

		arg := args[0]
		if signed(arg) {
			delta, err := strconv.Atoi(arg)
			if err != nil {
				return Command{}, invalid(name, "invalid offset %q", arg)
			}
			return Command{Action: ActionSeekRelative, Value: delta}, nil
		}

		seconds, err := ParseTime(arg)
		if err != nil {
			return Command{}, invalid(name, "%s", err)
		}
		return Command{Action: ActionSeek, Value: seconds}, nil

	case "volume":
		if err := want(2); err != nil {
			return Command{}, err
		}

		stream, err := strconv.Atoi(args[0])
		if err != nil || stream < 1 {
			return Command{}, invalid(name, "invalid stream %q", args[0])
		}

		value, err := strconv.Atoi(args[1])
		if err != nil {
			return Command{}, invalid(name, "invalid level %q", args[1])
		}

		action := ActionVolume
		if signed(args[1]) {
			action = ActionVolumeRelative
		}
		return Command{Action: action, Stream: stream - 1, Value: value}, nil

	default:
		return Command{}, invalid("command", "unknown command %q", name)
	}
}

func signed(s string) bool {
	return strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")
}
