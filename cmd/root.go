// Package cmd implements the command-line interface for multitracks.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/multitracks/multitracks/color"
	"github.com/multitracks/multitracks/constant"
	"github.com/multitracks/multitracks/icon"
	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/log"
	"github.com/multitracks/multitracks/style"
	"github.com/multitracks/multitracks/tui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Remember track and device assignments per file")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().IntP("streams", "n", 0, "Number of simultaneous streams")
	lo.Must0(viper.BindPFlag(key.PlayerStreams, rootCmd.PersistentFlags().Lookup("streams")))

	rootCmd.PersistentFlags().StringP("output", "o", "", "VLC audio output module")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("output", completionOutputs))
	lo.Must0(viper.BindPFlag(key.PlayerOutput, rootCmd.PersistentFlags().Lookup("output")))

	rootCmd.Flags().BoolP("continue", "c", false, "Resume the most recently played file")
}

// rootCmd defines the entry point for the multitracks application.
var rootCmd = &cobra.Command{
	Use:   constant.Multitracks,
	Short: "Play one video through several players, one audio track and output device each",
	Long: constant.Logo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Play one video through several players, one audio track and output device each"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{
			Continue:   lo.Must(cmd.Flags().GetBool("continue")),
			Controller: newController(),
			Inspector:  newInspector(),
			Catalog:    newCatalog(),
		}

		if len(args) == 1 {
			options.File = args[0]
		}

		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
