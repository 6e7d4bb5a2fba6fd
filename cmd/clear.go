package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/multitracks/multitracks/icon"
	"github.com/multitracks/multitracks/util"
	"github.com/multitracks/multitracks/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// clearable is saved data that can be removed without breaking the application.
var clearable = []location{
	{title: "session history", flag: "history", short: "s", path: where.History},
	{title: "log files", flag: "logs", short: "l", path: where.Logs},
	{title: "inspection cache", flag: "cache", short: "c", path: where.Cache},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, l := range clearable {
		clearCmd.Flags().BoolP(l.flag, l.short, false, "clear "+l.title)
	}
}

// clearCmd removes the selected application data.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear saved application data",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearable, func(l location, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(l.flag))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, l := range selected {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), l.title))
			err := util.Delete(l.path())
			erase()

			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(l.title))
		}
	},
}
