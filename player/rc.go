package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/multitracks/multitracks/key"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const (
	defaultDialTimeout  = 500 * time.Millisecond
	defaultReplyTimeout = 500 * time.Millisecond
	defaultCommandDelay = 100 * time.Millisecond
)

// Client speaks VLC's line-based remote-control protocol.
// Every command opens a fresh connection; there is no pipelining and no retry.
type Client struct {
	Host         string
	DialTimeout  time.Duration
	ReplyTimeout time.Duration

	// CommandDelay keeps a Send connection open after writing so the player reads the line before the hang-up.
	CommandDelay time.Duration
}

// NewClient creates a client for players listening on host.
func NewClient(host string) *Client {
	return &Client{
		Host:         host,
		DialTimeout:  defaultDialTimeout,
		ReplyTimeout: defaultReplyTimeout,
		CommandDelay: defaultCommandDelay,
	}
}

// ClientFromConfig creates a client using the configured host and timeouts.
func ClientFromConfig() *Client {
	return &Client{
		Host:         viper.GetString(key.PlayerHost),
		DialTimeout:  time.Duration(viper.GetInt(key.PlayerDialTimeout)) * time.Millisecond,
		ReplyTimeout: time.Duration(viper.GetInt(key.PlayerReplyTimeout)) * time.Millisecond,
		CommandDelay: time.Duration(viper.GetInt(key.PlayerCommandDelay)) * time.Millisecond,
	}
}

// Send writes line to the player on port and closes the connection.
func (c *Client) Send(ctx context.Context, port int, line string) error {
	conn, err := c.dial(ctx, port)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := writeLine(conn, line); err != nil {
		return err
	}

	if c.CommandDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.CommandDelay):
		}
	}

	return nil
}

// Query writes line to the player on port and waits up to ReplyTimeout for one reply line.
func (c *Client) Query(ctx context.Context, port int, line string) (string, error) {
	conn, err := c.dial(ctx, port)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if err := writeLine(conn, line); err != nil {
		return "", err
	}

	deadline := time.Now().Add(c.ReplyTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return "", fmt.Errorf("set deadline: %w", err)
	}

	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && reply == "" {
		return "", fmt.Errorf("read: %w", err)
	}

	return cleanReply(reply), nil
}

func (c *Client) dial(ctx context.Context, port int) (net.Conn, error) {
	dialer := net.Dialer{Timeout: c.DialTimeout}
	address := net.JoinHostPort(c.Host, strconv.Itoa(port))

	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", address, err)
	}
	return conn, nil
}

func writeLine(conn net.Conn, line string) error {
	if strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("command %q spans multiple lines", line)
	}
	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// cleanReply strips line endings and the interactive prompt VLC prefixes to its output.
func cleanReply(reply string) string {
	reply = strings.TrimSpace(reply)
	for strings.HasPrefix(reply, ">") {
		reply = strings.TrimSpace(strings.TrimPrefix(reply, ">"))
	}
	return reply
}

// IsRefused reports whether err is a refused connection, which means no player listens on the port.
func IsRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) || isPlatformRefused(err)
}

// ParseElapsed interprets a get_time reply.
// Only a non-empty string of decimal digits is a known position.
func ParseElapsed(reply string) mo.Option[int] {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return mo.None[int]()
	}

	for _, r := range reply {
		if r < '0' || r > '9' {
			return mo.None[int]()
		}
	}

	seconds, err := strconv.Atoi(reply)
	if err != nil {
		return mo.None[int]()
	}
	return mo.Some(seconds)
}
