// Package player launches media player processes and drives them over their remote-control interface.
// The implementation targets VLC's rc interface: one newline-terminated command per short-lived TCP connection.
package player

import "context"

// Launcher starts one playback process per stream.
type Launcher interface {
	// Launch starts a detached player process described by spec.
	// Only process creation is reported; the control port may not be accepting connections yet.
	Launch(ctx context.Context, spec LaunchSpec) (Process, error)
}

// Process is a handle on a running player.
type Process interface {
	// Pid returns the operating system identifier of the process.
	Pid() int

	// Exited returns a channel that is closed when the process terminates.
	Exited() <-chan struct{}

	// Kill forcefully terminates the process and its group.
	Kill() error
}

// Commander sends remote-control commands to a player listening on a port.
type Commander interface {
	// Send delivers a single command line without waiting for a reply.
	Send(ctx context.Context, port int, line string) error

	// Query delivers a single command line and returns the first reply line.
	Query(ctx context.Context, port int, line string) (string, error)
}
