// Package icon renders UI symbols in the variant chosen by the user.
//
// Every icon has an emoji, nerd-font, plain ASCII, kaomoji and square rendering.
package icon

import (
	"github.com/multitracks/multitracks/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var variants = [...]string{"emoji", "nerd", "plain", "kaomoji", "squares"}

// AvailableVariants returns the accepted values of the icons variant setting.
func AvailableVariants() []string {
	return variants[:]
}

// Get renders i in the configured variant, or returns an empty string for an unknown variant.
func Get(i Icon) string {
	_, index, ok := lo.FindIndexOf(variants[:], func(v string) bool {
		return v == viper.GetString(key.IconsVariant)
	})
	if !ok {
		return ""
	}
	return glyphs[i][index]
}
