//go:build windows

package player

import (
	"errors"
	"os/exec"
	"syscall"
)

// wsaeConnRefused is the Winsock error for a refused connection.
const wsaeConnRefused = syscall.Errno(10061)

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

func isPlatformRefused(err error) bool {
	return errors.Is(err, wsaeConnRefused)
}
