package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/multitracks/multitracks/color"
	"github.com/multitracks/multitracks/constant"
	"github.com/multitracks/multitracks/icon"
	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dependency is an external program multitracks runs.
type dependency struct {
	name     string
	key      string
	required bool
	install  map[string]string
}

var dependencies = []dependency{
	{
		name:     "vlc",
		key:      key.PlayerExecutable,
		required: true,
		install: map[string]string{
			constant.Darwin:  "brew install --cask vlc",
			constant.Linux:   "sudo apt install vlc",
			constant.Windows: "winget install VideoLAN.VLC",
		},
	},
	{
		name:     "ffprobe",
		key:      key.MediaFFprobe,
		required: true,
		install: map[string]string{
			constant.Darwin:  "brew install ffmpeg",
			constant.Linux:   "sudo apt install ffmpeg",
			constant.Windows: "winget install Gyan.FFmpeg",
		},
	},
	{
		name: "pactl",
		install: map[string]string{
			constant.Linux: "sudo apt install pulseaudio-utils",
		},
	},
}

func (d dependency) path() string {
	if d.key != "" {
		return viper.GetString(d.key)
	}
	return d.name
}

// CheckDependencies verifies that the player and the media inspector can be found.
func CheckDependencies() {
	for _, dep := range dependencies {
		if !dep.required {
			continue
		}

		if _, err := exec.LookPath(dep.path()); err != nil {
			printMissingDependencyError(dep)
			os.Exit(1)
		}
	}
}

func printMissingDependencyError(dep dependency) {
	installCmd := dep.install[runtime.GOOS]

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found at %q.", dep.name, dep.path()))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	if dep.key != "" {
		suggestion += fmt.Sprintf("\n\nOr point %s at an existing executable.", style.Fg(color.Purple)(dep.key))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

// checkCmd reports where each external program was found.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether the external programs multitracks runs are installed",
	Run: func(cmd *cobra.Command, args []string) {
		missing := lo.Filter(dependencies, func(dep dependency, _ int) bool {
			found, err := exec.LookPath(dep.path())
			if err != nil {
				status := style.Fg(color.Yellow)("optional, not found")
				if dep.required {
					status = style.Fg(color.Red)("not found")
				}
				cmd.Printf("%s %s %s\n", icon.Get(icon.Fail), style.Bold(dep.name), status)
				return dep.required
			}

			cmd.Printf("%s %s %s\n", icon.Get(icon.Success), style.Bold(dep.name), style.Faint(found))
			return false
		})

		if len(missing) > 0 {
			printMissingDependencyError(missing[0])
			os.Exit(1)
		}
	},
}
