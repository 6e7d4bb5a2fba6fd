package icon

import (
	"testing"

	"github.com/multitracks/multitracks/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	defer viper.Set(key.IconsVariant, "plain")

	Convey("Every icon has a rendering in every variant", t, func() {
		for _, variant := range AvailableVariants() {
			viper.Set(key.IconsVariant, variant)

			for i := range glyphs {
				So(Get(i), ShouldNotBeEmpty)
			}
		}
	})

	Convey("The plain variant is ASCII text", t, func() {
		viper.Set(key.IconsVariant, "plain")
		So(Get(Play), ShouldEqual, ">")
		So(Get(Volume), ShouldEqual, "vol")
	})

	Convey("An unknown variant renders nothing", t, func() {
		viper.Set(key.IconsVariant, "sparkles")
		So(Get(Success), ShouldBeEmpty)
	})

	Convey("Every icon constant is registered", t, func() {
		for i := Fail; i <= Mark; i++ {
			So(glyphs, ShouldContainKey, i)
		}
	})
}
