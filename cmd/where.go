package cmd

import (
	"os"

	"github.com/multitracks/multitracks/color"
	"github.com/multitracks/multitracks/style"
	"github.com/multitracks/multitracks/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// location is a directory the application writes to.
type location struct {
	title string
	flag  string
	short string
	path  func() string

	// hidden locations are only printed when asked for by flag.
	hidden bool
}

var locations = []location{
	{title: "Config", flag: "config", short: "c", path: where.Config},
	{title: "Logs", flag: "logs", short: "l", path: where.Logs},
	{title: "History", flag: "history", path: where.History},
	{title: "Cache", flag: "cache", path: where.Cache, hidden: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().BoolP(l.flag, l.short, false, l.title+" path")
		if l.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(l.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

// whereCmd prints the directories used by the application.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the paths of config, logs and saved sessions",
	Run: func(cmd *cobra.Command, args []string) {
		if l, ok := lo.Find(locations, func(l location) bool {
			return lo.Must(cmd.Flags().GetBool(l.flag))
		}); ok {
			cmd.Println(l.path())
			return
		}

		title := style.New().Bold(true).Foreground(color.HiPurple).Render

		for i, l := range lo.Reject(locations, func(l location, _ int) bool { return l.hidden }) {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", title(l.title+"?"), style.Fg(color.Yellow)("--"+l.flag))
			cmd.Println(l.path())
		}
	},
}
