package device

import (
	"context"
	"strings"

	"github.com/multitracks/multitracks/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Static is a fixed list of devices.
type Static []Device

// StaticFromConfig parses the devices.static setting.
// Entries are "id=name" or a bare "id".
func StaticFromConfig() Static {
	return ParseStatic(viper.GetStringSlice(key.DevicesStatic))
}

// ParseStatic parses "id=name" entries, skipping blank ones.
func ParseStatic(entries []string) Static {
	return lo.FilterMap(entries, func(entry string, _ int) (Device, bool) {
		id, name, _ := strings.Cut(entry, "=")
		id, name = strings.TrimSpace(id), strings.TrimSpace(name)
		if id == "" {
			return Device{}, false
		}
		if name == "" {
			name = id
		}
		return Device{ID: id, Name: name}, true
	})
}

func (s Static) Devices(context.Context) ([]Device, error) {
	return s, nil
}
