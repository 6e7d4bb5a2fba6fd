// Package config registers every setting with its default and wires viper to
// the config file, flags and MULTITRACKS_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"text/template"

	"github.com/multitracks/multitracks/color"
	"github.com/multitracks/multitracks/constant"
	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Multitracks + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        fmt.Sprintf("%T", f.Value),
	})
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

// DefaultExecutable returns the conventional VLC location for the running platform.
func DefaultExecutable() string {
	switch runtime.GOOS {
	case constant.Windows:
		return `C:\Program Files (x86)\VideoLAN\VLC\vlc.exe`
	case constant.Darwin:
		return "/Applications/VLC.app/Contents/MacOS/VLC"
	default:
		return "vlc"
	}
}

// DefaultOutput returns the audio output module VLC should use on the running platform.
func DefaultOutput() string {
	switch runtime.GOOS {
	case constant.Windows:
		return "directx"
	case constant.Darwin:
		return "auhal"
	default:
		return "pulse"
	}
}

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerExecutable, DefaultExecutable(), "Path to the VLC executable")
	register(key.PlayerStreams, 2, "Number of simultaneous streams to assign by default")
	register(key.PlayerBasePort, 4212, "Remote-control port of the first stream.\nStream i listens on base_port + i")
	register(key.PlayerHost, "localhost", "Host the remote-control interfaces bind to")
	register(key.PlayerOutput, DefaultOutput(), "VLC audio output module.\nAvailable options are: directx, mmdevice, alsa, pulse, auhal")
	register(key.PlayerFullscreen, true, "Show the video stream fullscreen")
	register(key.PlayerSettleDelay, 2000, "Milliseconds to wait after launching before the first command")
	register(key.PlayerPollInterval, 1000, "Milliseconds between position polls")
	register(key.PlayerCommandDelay, 100, "Milliseconds a command connection stays open after writing")
	register(key.PlayerReplyTimeout, 500, "Milliseconds to wait for a reply to a query")
	register(key.PlayerDialTimeout, 500, "Milliseconds to wait for a remote-control connection")
	register(key.MediaFFprobe, "ffprobe", "Path to the ffprobe executable used to list audio tracks")
	register(key.MediaCacheTTL, 168, "Hours an inspection result stays cached.\nSet to 0 to inspect files every time")
	register(key.DevicesSource, "auto", "How output devices are enumerated.\nAvailable options are: auto, pactl, static")
	register(key.DevicesStatic, []string{}, "Statically declared output devices in the form id=name")
	register(key.HistorySave, true, "Remember track and device assignments per file")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUISeekStep, 10, "Seconds to seek with the arrow keys")
	register(key.TUIVolumeStep, 5, "Volume change per key press. From 1 to 100")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.LogsMaxSize, 10, "Maximum size in megabytes of a log file before it is rotated")
	register(key.LogsMaxBackups, 5, "Number of rotated log files to keep")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return fmt.Sprintf("%T", v) },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
