package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/multitracks/multitracks/color"
	"github.com/multitracks/multitracks/media"
	"github.com/multitracks/multitracks/session"
	"github.com/multitracks/multitracks/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tracksCmd)
	tracksCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	tracksCmd.SetOut(os.Stdout)
}

// tracksCmd lists the audio tracks of a file.
var tracksCmd = &cobra.Command{
	Use:   "tracks FILE",
	Short: "List the audio tracks of a media file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		info, err := newInspector().Inspect(context.Background(), args[0])
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(info))
			return
		}

		cmd.Printf("%s %s\n\n", style.Bold(info.File), style.Faint(session.FormatTime(info.Duration)))

		if len(info.Tracks) == 0 {
			cmd.Println(style.Fg(color.Red)("no audio tracks detected"))
			return
		}

		for _, track := range info.Tracks {
			cmd.Printf("%s %s %s\n",
				style.Fg(color.Yellow)(fmt.Sprintf("%2d", track.Index)),
				style.Bold(track.Label),
				style.Faint(describe(track)),
			)
		}
	},
}

func describe(track media.Track) string {
	details := []string{track.Language}
	if track.Codec != "" {
		details = append(details, track.Codec)
	}
	if track.Channels > 0 {
		details = append(details, fmt.Sprintf("%dch", track.Channels))
	}
	return strings.Join(details, ", ")
}
