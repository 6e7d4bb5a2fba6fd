package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned by playback commands issued before Launch or after Quit.
	ErrNoSession = errors.New("no active playback session")

	// ErrSessionActive is returned by Launch while another session is running.
	ErrSessionActive = errors.New("a playback session is already active")
)

// ValidationError reports a request that was rejected before any command was sent or process started.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// UnreachableError reports a stream whose control port refused the connection.
type UnreachableError struct {
	Stream int
	Port   int
	Err    error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("stream %d: unable to connect to port %d", e.Stream+1, e.Port)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// Unreachable collects the *UnreachableError values held by err, including those joined by errors.Join.
func Unreachable(err error) []*UnreachableError {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var found []*UnreachableError
		for _, e := range joined.Unwrap() {
			found = append(found, Unreachable(e)...)
		}
		return found
	}

	var u *UnreachableError
	if errors.As(err, &u) {
		return []*UnreachableError{u}
	}
	return nil
}

// StillPlaying reports whether a Play over streams that returned err reached at least one stream.
// Only refused connections count; any other error means nothing is known to play.
func StillPlaying(err error, streams int) bool {
	if err == nil {
		return true
	}

	n := len(Unreachable(err))
	return n > 0 && n < streams
}
