package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/multitracks/multitracks/constant"
	"github.com/multitracks/multitracks/device"
	"github.com/multitracks/multitracks/filesystem"
	"github.com/multitracks/multitracks/log"
	"github.com/multitracks/multitracks/player"
	"github.com/multitracks/multitracks/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

const maxPort = 65535

// Controller owns at most one Session and keeps its streams aligned.
// It is safe for concurrent use.
type Controller struct {
	launcher  player.Launcher
	commander player.Commander
	options   Options

	// cmd serializes network I/O so broadcasts never interleave.
	cmd sync.Mutex

	mu          sync.Mutex
	session     *Session
	logger      *logrus.Entry
	position    mo.Option[Position]
	paused      bool
	subscribers []chan Position
	tickerStop  chan struct{}
}

// New creates a controller that starts players with launcher and drives them with commander.
func New(launcher player.Launcher, commander player.Commander, options Options) *Controller {
	return &Controller{
		launcher:  launcher,
		commander: commander,
		options:   options,
		logger:    log.WithSession("none"),
	}
}

// Launch validates req, starts one player per stream and waits for them to settle.
// Nothing is started when validation fails.
func (c *Controller) Launch(ctx context.Context, req Request) (*Session, error) {
	if c.Active() {
		return nil, ErrSessionActive
	}

	s, err := c.prepare(req)
	if err != nil {
		return nil, err
	}

	c.cmd.Lock()
	defer c.cmd.Unlock()

	logger := log.WithSession(s.ID)
	logger.Infof("launching %d streams for %s", len(s.Streams), s.File)

	for _, stream := range s.Streams {
		proc, err := c.launcher.Launch(ctx, player.LaunchSpec{
			Executable: c.options.Executable,
			File:       s.File,
			Track:      stream.Track,
			Device:     stream.Device.ID,
			Host:       c.options.Host,
			Port:       stream.Port,
			Visible:    stream.Visible,
			Fullscreen: c.options.Fullscreen,
			Output:     c.options.Output,
		})
		if err != nil {
			kill(logger, s.Streams[:stream.Index])
			return nil, fmt.Errorf("launch stream %d: %w", stream.Index+1, err)
		}
		stream.Process = proc
	}

	// The control ports are not guaranteed to accept connections right after process creation.
	if err := sleep(ctx, c.options.SettleDelay); err != nil {
		kill(logger, s.Streams)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		kill(logger, s.Streams)
		return nil, ErrSessionActive
	}

	c.session = s
	c.logger = logger
	c.position = mo.None[Position]()
	c.paused = false

	return s.clone(), nil
}

// prepare validates req and builds the session it describes.
func (c *Controller) prepare(req Request) (*Session, error) {
	file := strings.TrimSpace(req.File)
	if file == "" {
		return nil, invalid("file", "no file selected")
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, invalid("file", "%s", err)
	}

	info, err := filesystem.API().Stat(abs)
	if err != nil {
		return nil, invalid("file", "%s does not exist", abs)
	}
	if info.IsDir() {
		return nil, invalid("file", "%s is a directory", abs)
	}

	if len(req.Streams) == 0 {
		return nil, invalid("streams", "at least one stream is required")
	}

	if c.options.BasePort < 1 || c.options.BasePort+len(req.Streams)-1 > maxPort {
		return nil, invalid("streams", "ports %d-%d are out of range", c.options.BasePort, c.options.BasePort+len(req.Streams)-1)
	}

	s := &Session{
		ID:        uuid.NewString(),
		File:      abs,
		Duration:  req.Duration,
		Tracks:    req.Tracks,
		StartedAt: time.Now(),
	}

	for i, sr := range req.Streams {
		field := fmt.Sprintf("stream %d", i+1)

		if sr.Track < 0 || (len(req.Tracks) > 0 && sr.Track >= len(req.Tracks)) {
			return nil, invalid(field, "audio track %d does not exist", sr.Track)
		}

		if strings.TrimSpace(sr.Device) == "" {
			return nil, invalid(field, "no audio device selected")
		}

		dev, err := device.Resolve(req.Devices, sr.Device)
		if err != nil {
			return nil, invalid(field, "%s", err)
		}

		s.Streams = append(s.Streams, &Stream{
			Index:   i,
			Port:    c.options.BasePort + i,
			Track:   sr.Track,
			Device:  dev,
			Volume:  DefaultVolume,
			Visible: i == 0,
		})
	}

	return s, nil
}

// Play sends play to every stream and (re)starts the position poll.
// Every stream that refuses the connection contributes one *UnreachableError.
func (c *Controller) Play(ctx context.Context) error {
	s, logger, err := c.active()
	if err != nil {
		return err
	}

	var errs []error
	c.broadcast(ctx, s, constant.CommandPlay, func(stream *Stream, err error) {
		if player.IsRefused(err) {
			errs = append(errs, &UnreachableError{Stream: stream.Index, Port: stream.Port, Err: err})
			return
		}
		logger.Warnf("play on port %d: %v", stream.Port, err)
	})

	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()

	c.startPolling()

	return errors.Join(errs...)
}

// Pause sends pause to every stream, then reads back the reference position.
func (c *Controller) Pause(ctx context.Context) error {
	s, logger, err := c.active()
	if err != nil {
		return err
	}

	c.broadcast(ctx, s, constant.CommandPause, silent(logger, constant.CommandPause))

	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()

	elapsed, err := c.CurrentTime(ctx)
	if err != nil {
		return err
	}

	if seconds, ok := elapsed.Get(); ok {
		c.publish(Position{Seconds: seconds, Origin: OriginSync})
	}

	return nil
}

// Seek moves every stream to seconds without waiting for acknowledgement.
// The requested position is published immediately.
func (c *Controller) Seek(ctx context.Context, seconds int) error {
	if seconds < 0 {
		return invalid("seek", "position %d is negative", seconds)
	}

	s, logger, err := c.active()
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s %d", constant.CommandSeek, seconds)
	c.broadcast(ctx, s, line, silent(logger, line))

	c.publish(Position{Seconds: seconds, Origin: OriginUser})
	return nil
}

// SeekRelative seeks by delta seconds from the last known position, clamped to the file.
func (c *Controller) SeekRelative(ctx context.Context, delta int) error {
	c.mu.Lock()
	current := c.position.OrElse(Position{}).Seconds
	var duration int
	if c.session != nil {
		duration = c.session.Duration
	}
	c.mu.Unlock()

	target := max(current+delta, 0)
	if duration > 0 {
		target = min(target, duration)
	}

	return c.Seek(ctx, target)
}

// SetVolume sets the level, 0 to 100, of a single stream. Other streams are untouched.
func (c *Controller) SetVolume(ctx context.Context, index, level int) error {
	if level < 0 || level > MaxVolume {
		return invalid("volume", "level %d is outside 0-%d", level, MaxVolume)
	}

	s, logger, err := c.active()
	if err != nil {
		return err
	}

	if index < 0 || index >= len(s.Streams) {
		return invalid("volume", "stream %d does not exist", index+1)
	}

	stream := s.Streams[index]
	line := fmt.Sprintf("%s %d", constant.CommandVolume, playerVolume(level))

	c.cmd.Lock()
	err = c.commander.Send(ctx, stream.Port, line)
	c.cmd.Unlock()

	if err != nil {
		logger.Warnf("%s on port %d: %v", line, stream.Port, err)
	}

	c.mu.Lock()
	stream.Volume = level
	c.mu.Unlock()

	return nil
}

// AdjustVolume changes the level of a stream by delta, clamped to 0-100.
func (c *Controller) AdjustVolume(ctx context.Context, index, delta int) error {
	s, _, err := c.active()
	if err != nil {
		return err
	}

	if index < 0 || index >= len(s.Streams) {
		return invalid("volume", "stream %d does not exist", index+1)
	}

	c.mu.Lock()
	level := s.Streams[index].Volume
	c.mu.Unlock()

	return c.SetVolume(ctx, index, util.Clamp(level+delta, 0, MaxVolume))
}

// CurrentTime asks the reference stream for its elapsed time.
// Transport failures are returned; a reply that is not a whole number of seconds is None.
func (c *Controller) CurrentTime(ctx context.Context) (mo.Option[int], error) {
	s, _, err := c.active()
	if err != nil {
		return mo.None[int](), err
	}

	return c.query(ctx, s.Reference())
}

func (c *Controller) query(ctx context.Context, stream *Stream) (mo.Option[int], error) {
	c.cmd.Lock()
	reply, err := c.commander.Query(ctx, stream.Port, constant.CommandGetTime)
	c.cmd.Unlock()

	if err != nil {
		if player.IsRefused(err) {
			return mo.None[int](), &UnreachableError{Stream: stream.Index, Port: stream.Port, Err: err}
		}
		return mo.None[int](), fmt.Errorf("get current time: %w", err)
	}

	return player.ParseElapsed(reply), nil
}

// PollPosition runs one poll tick. Failures and unknown replies leave the position unchanged.
// A polled position is published with OriginSync and never causes a seek.
func (c *Controller) PollPosition(ctx context.Context) {
	s, logger, err := c.active()
	if err != nil {
		return
	}

	elapsed, err := c.query(ctx, s.Reference())
	if err != nil {
		logger.Debugf("poll skipped: %v", err)
		return
	}

	seconds, ok := elapsed.Get()
	if !ok {
		return
	}

	c.mu.Lock()
	current := c.session
	c.mu.Unlock()

	// The session may have been quit while the query was in flight.
	if current != s {
		return
	}

	c.publish(Position{Seconds: seconds, Origin: OriginSync})
}

// Quit stops the poll, sends quit to every stream and forgets the session.
// Refused connections are expected here and ignored. Calling Quit without a session is a no-op.
func (c *Controller) Quit(ctx context.Context) error {
	c.stopPolling()

	c.mu.Lock()
	s, logger := c.session, c.logger
	c.mu.Unlock()

	if s == nil {
		return nil
	}

	c.broadcast(ctx, s, constant.CommandQuit, func(stream *Stream, err error) {
		if player.IsRefused(err) {
			return
		}
		logger.Warnf("quit on port %d: %v", stream.Port, err)
	})

	c.mu.Lock()
	if c.session == s {
		c.session = nil
		c.logger = log.WithSession("none")
		c.paused = false
	}
	c.mu.Unlock()

	logger.Info("session closed")
	return nil
}

// Active reports whether a session is running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

// Paused reports whether the last transport command was a pause.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Session returns a copy of the running session.
func (c *Controller) Session() mo.Option[*Session] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return mo.None[*Session]()
	}
	return mo.Some(c.session.clone())
}

// Position returns the last published position.
func (c *Controller) Position() mo.Option[Position] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// Subscribe returns a channel receiving published positions and a func that stops the delivery.
// The channel holds one position; a slow reader only misses intermediate ones.
func (c *Controller) Subscribe() (<-chan Position, func()) {
	ch := make(chan Position, 1)

	c.mu.Lock()
	c.subscribers = append(c.subscribers, ch)
	c.mu.Unlock()

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.subscribers = lo.Without(c.subscribers, ch)
	}
}

func (c *Controller) publish(p Position) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.position = mo.Some(p)

	for _, ch := range c.subscribers {
		select {
		case <-ch:
		default:
		}

		select {
		case ch <- p:
		default:
		}
	}
}

func (c *Controller) active() (*Session, *logrus.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil, nil, ErrNoSession
	}
	return c.session, c.logger, nil
}

// broadcast sends line to every stream in ascending port order and reports each failure to onError.
func (c *Controller) broadcast(ctx context.Context, s *Session, line string, onError func(*Stream, error)) {
	c.cmd.Lock()
	defer c.cmd.Unlock()

	for _, stream := range s.Streams {
		if err := c.commander.Send(ctx, stream.Port, line); err != nil {
			onError(stream, err)
		}
	}
}

func (c *Controller) startPolling() {
	c.stopPolling()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.options.PollInterval <= 0 {
		return
	}

	stop := make(chan struct{})
	c.tickerStop = stop

	go func() {
		ticker := time.NewTicker(c.options.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.PollPosition(context.Background())
			}
		}
	}()
}

func (c *Controller) stopPolling() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tickerStop != nil {
		close(c.tickerStop)
		c.tickerStop = nil
	}
}

func silent(logger *logrus.Entry, line string) func(*Stream, error) {
	return func(stream *Stream, err error) {
		logger.Debugf("%s on port %d: %v", line, stream.Port, err)
	}
}

func kill(logger *logrus.Entry, streams []*Stream) {
	for _, stream := range streams {
		if stream.Process == nil {
			continue
		}
		if err := stream.Process.Kill(); err != nil {
			logger.Warnf("kill stream %d (pid %d): %v", stream.Index+1, stream.Process.Pid(), err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
