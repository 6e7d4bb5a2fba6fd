package session

import (
	"time"

	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/player"
	"github.com/spf13/viper"
)

// Options configures how a Controller launches and polls players.
type Options struct {
	Executable string
	Host       string

	// BasePort is the control port of stream 0; stream i listens on BasePort+i.
	BasePort int

	// SettleDelay is waited after launching, before any command is sent.
	SettleDelay time.Duration

	// PollInterval is the period of the position poll.
	PollInterval time.Duration

	Output     player.Output
	Fullscreen bool
}

// OptionsFromConfig reads Options from the player settings.
func OptionsFromConfig() (Options, error) {
	output, err := player.OutputByName(viper.GetString(key.PlayerOutput))
	if err != nil {
		return Options{}, err
	}

	return Options{
		Executable:   viper.GetString(key.PlayerExecutable),
		Host:         viper.GetString(key.PlayerHost),
		BasePort:     viper.GetInt(key.PlayerBasePort),
		SettleDelay:  time.Duration(viper.GetInt(key.PlayerSettleDelay)) * time.Millisecond,
		PollInterval: time.Duration(viper.GetInt(key.PlayerPollInterval)) * time.Millisecond,
		Output:       output,
		Fullscreen:   viper.GetBool(key.PlayerFullscreen),
	}, nil
}
