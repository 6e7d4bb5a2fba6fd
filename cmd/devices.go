package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/multitracks/multitracks/color"
	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	devicesCmd.SetOut(os.Stdout)
}

// devicesCmd lists the output devices streams can be assigned to.
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the audio output devices streams can be assigned to",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		devices, err := newCatalog().Devices(context.Background())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(devices))
			return
		}

		if len(devices) == 0 {
			cmd.Printf("%s, declare them with %s\n", style.Fg(color.Red)("no audio output devices found"), style.Fg(color.Purple)(key.DevicesStatic))
			return
		}

		for _, d := range devices {
			cmd.Printf("%s %s\n", style.Bold(d.String()), style.Faint(d.ID))
		}
	},
}
