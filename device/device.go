// Package device enumerates audio output devices and resolves user selectors to them.
package device

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/multitracks/multitracks/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	SourceAuto   = "auto"
	SourcePactl  = "pactl"
	SourceStatic = "static"
)

// AvailableSources lists the accepted values of the devices source setting.
var AvailableSources = []string{SourceAuto, SourcePactl, SourceStatic}

// Device is an addressable output device.
// ID is opaque and passed unchanged to the player.
type Device struct {
	ID   string `json:"id" jsonschema:"description=Platform specific device identifier."`
	Name string `json:"name" jsonschema:"description=Human readable device name."`
}

func (d Device) String() string {
	if d.Name == "" || d.Name == d.ID {
		return d.ID
	}
	return d.Name
}

// Catalog lists the output devices available to players.
type Catalog interface {
	Devices(ctx context.Context) ([]Device, error)
}

// Multi concatenates catalogs, keeping the first device seen for each ID.
type Multi []Catalog

func (m Multi) Devices(ctx context.Context) ([]Device, error) {
	var all []Device
	for _, c := range m {
		devices, err := c.Devices(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, devices...)
	}

	return lo.UniqBy(all, func(d Device) string {
		return d.ID
	}), nil
}

// FromConfig returns the catalog selected by the devices source setting.
// The auto source uses pactl when it is installed and always includes the static list.
func FromConfig() (Catalog, error) {
	static := StaticFromConfig()

	switch source := strings.ToLower(viper.GetString(key.DevicesSource)); source {
	case SourceStatic:
		return static, nil
	case SourcePactl:
		return NewPactl(), nil
	case SourceAuto, "":
		if _, err := exec.LookPath(pactlExecutable); err != nil {
			return static, nil
		}
		return Multi{NewPactl(), static}, nil
	default:
		return nil, fmt.Errorf("unknown device source %q, expected one of %s", source, strings.Join(AvailableSources, ", "))
	}
}
