package config

import (
	"testing"

	"github.com/multitracks/multitracks/filesystem"
	"github.com/multitracks/multitracks/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Should expose the historical remote-control defaults", func() {
			_ = Setup()
			So(viper.GetInt(key.PlayerBasePort), ShouldEqual, 4212)
			So(viper.GetInt(key.PlayerPollInterval), ShouldEqual, 1000)
			So(viper.GetInt(key.PlayerSettleDelay), ShouldEqual, 2000)
			So(viper.GetInt(key.PlayerStreams), ShouldEqual, 2)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("player.base_port")
			So(result, ShouldEqual, "player_base_port")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.PlayerBasePort]

		Convey("Its environment variable carries the application prefix", func() {
			So(field.Env(), ShouldEqual, "MULTITRACKS_PLAYER_BASE_PORT")
		})

		Convey("Its type name is derived from the default value", func() {
			So(field.typeName(), ShouldEqual, "int")
			static := Default[key.DevicesStatic]
			So(static.typeName(), ShouldEqual, "[]string")
		})

		Convey("Pretty rendering mentions the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.PlayerBasePort)
		})
	})
}
