package player

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/log"
	"github.com/spf13/viper"
)

// Output describes how VLC addresses an audio output device.
type Output struct {
	// Module is the value of --aout.
	Module string

	// DeviceFlag is the VLC option receiving the device identifier, if the module has one.
	DeviceFlag string

	// DeviceEnv is the environment variable receiving the device identifier, if the module reads one.
	DeviceEnv string
}

var outputs = map[string]Output{
	"directx":  {Module: "directx", DeviceFlag: "--directx-audio-device"},
	"mmdevice": {Module: "mmdevice", DeviceFlag: "--mmdevice-audio-device"},
	"alsa":     {Module: "alsa", DeviceFlag: "--alsa-audio-device"},
	"auhal":    {Module: "auhal", DeviceFlag: "--auhal-audio-device"},
	"pulse":    {Module: "pulse", DeviceEnv: "PULSE_SINK"},
}

// AvailableOutputs returns the names of the supported audio output modules.
func AvailableOutputs() []string {
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	return names
}

// OutputByName looks up a supported audio output module.
func OutputByName(name string) (Output, error) {
	out, ok := outputs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Output{}, fmt.Errorf("unsupported audio output %q", name)
	}
	return out, nil
}

// LaunchSpec is everything needed to start one stream's player.
type LaunchSpec struct {
	Executable string

	// File is the absolute path of the media file.
	File string

	// Track is the zero-based audio track index decoded by this player.
	Track int

	// Device is the opaque output device identifier, passed through verbatim.
	Device string

	Host string
	Port int

	// Visible selects video rendering; audio-only players run with --novideo.
	Visible    bool
	Fullscreen bool

	Output Output
}

// VLC launches VLC media player instances with the rc interface enabled.
type VLC struct{}

// NewVLC creates a VLC launcher.
func NewVLC() *VLC {
	return &VLC{}
}

// Args builds the VLC command line for spec, excluding the executable.
func (VLC) Args(spec LaunchSpec) ([]string, error) {
	file, err := sanitizeMediaFile(spec.File)
	if err != nil {
		return nil, fmt.Errorf("invalid media file: %w", err)
	}

	if spec.Port <= 0 || spec.Port > 65535 {
		return nil, fmt.Errorf("invalid control port %d", spec.Port)
	}

	if spec.Track < 0 {
		return nil, fmt.Errorf("invalid audio track %d", spec.Track)
	}

	args := []string{
		file,
		fmt.Sprintf("--audio-track=%d", spec.Track),
	}

	if spec.Output.Module != "" {
		args = append(args, fmt.Sprintf("--aout=%s", spec.Output.Module))
	}

	if spec.Output.DeviceFlag != "" && spec.Device != "" {
		args = append(args, fmt.Sprintf("%s=%s", spec.Output.DeviceFlag, spec.Device))
	}

	args = append(args,
		"--no-video-title-show",
		fmt.Sprintf("--rc-host=%s", net.JoinHostPort(spec.Host, strconv.Itoa(spec.Port))),
		"--extraintf=rc",
		"--intf=dummy",
	)

	switch {
	case !spec.Visible:
		args = append(args, "--novideo")
	case spec.Fullscreen:
		args = append(args, "--fullscreen")
	}

	return args, nil
}

// Env returns the environment of the player process for spec.
func (VLC) Env(spec LaunchSpec) []string {
	env := os.Environ()
	if spec.Output.DeviceEnv != "" && spec.Device != "" {
		env = append(env, fmt.Sprintf("%s=%s", spec.Output.DeviceEnv, spec.Device))
	}
	return env
}

// Launch starts VLC for spec. The process is detached from the terminal and reaped in the background.
func (v VLC) Launch(ctx context.Context, spec LaunchSpec) (Process, error) {
	args, err := v.Args(spec)
	if err != nil {
		return nil, err
	}

	executable := spec.Executable
	if executable == "" {
		executable = viper.GetString(key.PlayerExecutable)
	}

	// The context only bounds process creation; players outlive the launching call.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.Command(executable, args...)
	cmd.Env = v.Env(spec)
	cmd.SysProcAttr = sysProcAttr()

	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", filepath.Base(executable), err)
	}

	log.Infof("started %s (pid %d) on port %d: track %d, device %q, visible %t",
		filepath.Base(executable), cmd.Process.Pid, spec.Port, spec.Track, spec.Device, spec.Visible)

	p := &process{cmd: cmd, exited: make(chan struct{})}
	go p.reap()

	return p, nil
}

type process struct {
	cmd    *exec.Cmd
	exited chan struct{}
	once   sync.Once
}

func (p *process) reap() {
	err := p.cmd.Wait()
	if err != nil {
		log.Debugf("player %d exited: %v", p.cmd.Process.Pid, err)
	}
	p.once.Do(func() { close(p.exited) })
}

func (p *process) Pid() int {
	return p.cmd.Process.Pid
}

func (p *process) Exited() <-chan struct{} {
	return p.exited
}

func (p *process) Kill() error {
	select {
	case <-p.exited:
		return nil
	default:
	}
	return killProcess(p.cmd)
}

// sanitizeMediaFile validates that a path is safe to pass to the player and makes it absolute.
func sanitizeMediaFile(path string) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.ContainsAny(p, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in path")
	}

	// Prevent flag injection: paths must not start with -
	if strings.HasPrefix(p, "-") {
		return "", fmt.Errorf("path must not start with '-' (looks like a flag)")
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return abs, nil
}
