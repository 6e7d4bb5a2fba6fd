package cmd

import (
	"testing"

	"github.com/multitracks/multitracks/config"
	"github.com/multitracks/multitracks/device"
	"github.com/multitracks/multitracks/filesystem"
	"github.com/multitracks/multitracks/history"
	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/media"
	"github.com/multitracks/multitracks/session"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	if err := config.Setup(); err != nil {
		panic(err)
	}
}

func testDiscovery() *session.Discovery {
	return &session.Discovery{
		Info: &media.Info{
			File:     "/media/talk.mkv",
			Duration: 3600,
			Tracks: []media.Track{
				{Index: 0, Language: "eng", Label: "English"},
				{Index: 1, Language: "fra", Label: "Français"},
			},
		},
		Devices: []device.Device{
			{ID: "hw:0", Name: "Main Hall"},
			{ID: "hw:1", Name: "Booth A"},
		},
	}
}

func TestAssignStreams(t *testing.T) {
	Convey("Given a discovered file", t, func() {
		d := testDiscovery()
		none := mo.None[*history.SavedSession]()

		Convey("When streams are given explicitly", func() {
			streams, err := assignStreams([]string{"fra:Booth A", "0:hw:0"}, d, none, false)

			Convey("Then they are used as given", func() {
				So(err, ShouldBeNil)
				So(streams, ShouldResemble, []session.StreamRequest{
					{Track: 1, Device: "Booth A"},
					{Track: 0, Device: "hw:0"},
				})
			})
		})

		Convey("When an explicit stream is malformed", func() {
			_, err := assignStreams([]string{"english"}, d, none, false)
			So(err, ShouldNotBeNil)
		})

		Convey("When a saved session exists", func() {
			saved := &history.SavedSession{
				File:    d.Info.File,
				Streams: []history.SavedStream{{Track: 1, DeviceID: "hw:1"}},
			}
			streams, err := assignStreams(nil, d, mo.Some(saved), false)

			Convey("Then its assignments are reused", func() {
				So(err, ShouldBeNil)
				So(streams, ShouldResemble, []session.StreamRequest{{Track: 1, Device: "hw:1"}})
			})
		})

		Convey("When nothing is given and prompts are disabled", func() {
			viper.Set(key.PlayerStreams, 3)
			defer viper.Set(key.PlayerStreams, 2)

			streams, err := assignStreams(nil, d, none, false)

			Convey("Then defaults are assigned", func() {
				So(err, ShouldBeNil)
				So(streams, ShouldHaveLength, 3)
				So(streams[2], ShouldResemble, session.StreamRequest{Track: 1, Device: "hw:0"})
			})
		})

		Convey("When no devices were found", func() {
			d.Devices = nil
			_, err := assignStreams(nil, d, none, false)

			Convey("Then the static device key is suggested", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, key.DevicesStatic)
			})
		})
	})
}

func TestValidateValue(t *testing.T) {
	Convey("validateValue", t, func() {
		So(validateValue(key.PlayerOutput, "pulse"), ShouldBeNil)
		So(validateValue(key.PlayerOutput, "oss"), ShouldNotBeNil)
		So(validateValue(key.DevicesSource, "static"), ShouldBeNil)
		So(validateValue(key.DevicesSource, "alsa"), ShouldNotBeNil)
		So(validateValue(key.PlayerBasePort, 70000), ShouldNotBeNil)
		So(validateValue(key.PlayerStreams, 0), ShouldNotBeNil)
		So(validateValue(key.TUIVolumeStep, 5), ShouldBeNil)
		So(validateValue(key.IconsVariant, "nerd"), ShouldBeNil)
		So(validateValue(key.TUISeekStep, 30), ShouldBeNil)
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("Unknown keys suggest the closest one", t, func() {
		So(errUnknownKey("player.stream").Error(), ShouldContainSubstring, key.PlayerStreams)
	})
}
