package device

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const pactlExecutable = "pactl"

// Pactl lists PulseAudio (or PipeWire) sinks through pactl.
type Pactl struct {
	Path string

	run func(ctx context.Context, path string, args ...string) ([]byte, error)
}

// NewPactl creates a catalog backed by the pactl found in PATH.
func NewPactl() *Pactl {
	return &Pactl{Path: pactlExecutable, run: runCommand}
}

// Devices returns every sink in pactl's order, named by its description when available.
func (p *Pactl) Devices(ctx context.Context) ([]Device, error) {
	short, err := p.run(ctx, p.Path, "list", "short", "sinks")
	if err != nil {
		return nil, err
	}

	// Descriptions are cosmetic; a failure here keeps sink names as labels.
	long, err := p.run(ctx, p.Path, "list", "sinks")
	if err != nil {
		long = nil
	}

	descriptions := parseDescriptions(long)

	var devices []Device
	for _, id := range parseShortSinks(short) {
		name, ok := descriptions[id]
		if !ok {
			name = id
		}
		devices = append(devices, Device{ID: id, Name: name})
	}

	return devices, nil
}

// parseShortSinks extracts sink names from "index name driver spec state" lines.
func parseShortSinks(out []byte) []string {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		names = append(names, fields[1])
	}
	return names
}

// parseDescriptions maps sink names to descriptions from the long listing.
func parseDescriptions(out []byte) map[string]string {
	descriptions := make(map[string]string)

	var current string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "Sink #"):
			current = ""
		case strings.HasPrefix(line, "Name:"):
			current = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
		case strings.HasPrefix(line, "Description:") && current != "":
			descriptions[current] = strings.TrimSpace(strings.TrimPrefix(line, "Description:"))
		}
	}

	return descriptions
}

func runCommand(ctx context.Context, path string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s: %w: %s", path, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return out.Bytes(), nil
}
