package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/invopop/jsonschema"
	"github.com/multitracks/multitracks/device"
	"github.com/multitracks/multitracks/history"
	"github.com/multitracks/multitracks/inline"
	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/media"
	"github.com/multitracks/multitracks/session"
	"github.com/multitracks/multitracks/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringArrayP("stream", "s", []string{}, "Assign TRACK:DEVICE to the next stream; repeat once per stream")
	playCmd.Flags().BoolP("json", "j", false, "Report positions as JSON lines")
	playCmd.Flags().StringP("resume", "r", "", "Start from this position, as seconds or HH:MM:SS")
	playCmd.Flags().BoolP("continue", "c", false, "Reuse the saved assignments and position of this file")
	playCmd.Flags().BoolP("yes", "y", false, "Never prompt; unassigned streams use default tracks and the first device")

	playCmd.MarkFlagsMutuallyExclusive("resume", "continue")
}

// playCmd runs a session without the terminal interface.
var playCmd = &cobra.Command{
	Use:   "play FILE",
	Short: "Play a file without the terminal interface, reading commands from standard input",
	Long: `Launch one player per stream and control them with commands read from standard input.

Commands:
  play                 resume playback
  pause                pause every stream
  seek SECONDS         seek every stream, also accepts HH:MM:SS
  seek +N | seek -N    seek relative to the current position
  volume STREAM LEVEL  set the volume (0-100) of one stream, numbered from 1
  volume STREAM +N|-N  change the volume of one stream
  time                 report the current position
  quit                 stop every player and exit

Streams:
  TRACK is a track index as listed by "tracks", a language tag or a track label.
  DEVICE is a device ID or name as listed by "devices".`,
	Example: "  multitracks play talk.mkv -s eng:\"Main Hall\" -s fra:booth-a --json",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		file, err := filepath.Abs(args[0])
		handleErr(err)

		discovery, err := session.Discover(ctx, newInspector(), newCatalog(), file)
		handleErr(err)

		saved := mo.None[*history.SavedSession]()
		if lo.Must(cmd.Flags().GetBool("continue")) {
			records, err := history.Get()
			handleErr(err)

			record, ok := records[file]
			if !ok {
				handleErr(fmt.Errorf("no saved session for %s", file))
			}
			saved = mo.Some(record)
		}

		streams, err := assignStreams(
			lo.Must(cmd.Flags().GetStringArray("stream")),
			discovery,
			saved,
			!lo.Must(cmd.Flags().GetBool("yes")) && util.IsInteractive(),
		)
		handleErr(err)

		resume := mo.None[int]()
		if record, ok := saved.Get(); ok {
			resume = mo.Some(record.Position)
		}
		if value := lo.Must(cmd.Flags().GetString("resume")); value != "" {
			seconds, err := session.ParseTime(value)
			handleErr(err)
			resume = mo.Some(seconds)
		}

		options := &inline.Options{
			Out:     os.Stdout,
			Err:     os.Stderr,
			In:      os.Stdin,
			Json:    lo.Must(cmd.Flags().GetBool("json")),
			Request: discovery.Request(streams),
			Resume:  resume,
		}

		handleErr(inline.Run(ctx, newController(), options))
	},
}

// assignStreams decides the track and device of every stream.
// Explicit assignments win, then a saved session, then prompts or defaults.
func assignStreams(values []string, d *session.Discovery, saved mo.Option[*history.SavedSession], interactive bool) ([]session.StreamRequest, error) {
	if len(values) > 0 {
		streams := make([]session.StreamRequest, 0, len(values))
		for _, value := range values {
			stream, err := inline.ParseAssignment(value, d.Info.Tracks)
			if err != nil {
				return nil, err
			}
			streams = append(streams, stream)
		}
		return streams, nil
	}

	if record, ok := saved.Get(); ok {
		return record.Requests(), nil
	}

	if len(d.Devices) == 0 {
		return nil, fmt.Errorf("no audio output devices found, declare them with %s", key.DevicesStatic)
	}

	n := viper.GetInt(key.PlayerStreams)
	if n < 1 {
		return nil, errors.New("at least one stream is required")
	}

	if !interactive {
		return session.DefaultRequests(n, len(d.Info.Tracks), d.Devices), nil
	}

	return promptStreams(n, d)
}

func promptStreams(n int, d *session.Discovery) ([]session.StreamRequest, error) {
	tracks := lo.Map(d.Info.Tracks, func(t media.Track, _ int) string {
		return fmt.Sprintf("%d. %s", t.Index, t)
	})
	devices := lo.Map(d.Devices, func(dev device.Device, _ int) string {
		return dev.String()
	})

	streams := make([]session.StreamRequest, 0, n)
	for i := 0; i < n; i++ {
		var track, dev int

		if err := survey.AskOne(&survey.Select{
			Message: fmt.Sprintf("Audio track for stream %d", i+1),
			Options: tracks,
			Default: session.DefaultTrack(i, len(tracks)),
		}, &track); err != nil {
			return nil, err
		}

		if err := survey.AskOne(&survey.Select{
			Message: fmt.Sprintf("Output device for stream %d", i+1),
			Options: devices,
		}, &dev); err != nil {
			return nil, err
		}

		streams = append(streams, session.StreamRequest{Track: track, Device: d.Devices[dev].ID})
	}

	return streams, nil
}

func init() {
	playCmd.AddCommand(playSchemaCmd)
}

// playSchemaCmd prints the JSON schema of the events written by "play --json".
var playSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the events written with --json",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return filepath.Base(t.PkgPath()) + "." + t.Name()
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Event{})))
	},
}
