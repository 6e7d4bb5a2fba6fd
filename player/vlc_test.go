package player

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestVLCArgs(t *testing.T) {
	Convey("Given a VLC launcher", t, func() {
		vlc := NewVLC()
		directx := lookupOutput("directx")
		spec := LaunchSpec{
			File:       "/media/talk.mkv",
			Track:      1,
			Device:     "{0000-1111}",
			Host:       "localhost",
			Port:       4213,
			Visible:    false,
			Fullscreen: true,
			Output:     directx,
		}

		Convey("An audio-only stream decodes its track on its device without video", func() {
			args, err := vlc.Args(spec)
			So(err, ShouldBeNil)
			So(args[0], ShouldEqual, "/media/talk.mkv")
			So(args, ShouldContain, "--audio-track=1")
			So(args, ShouldContain, "--aout=directx")
			So(args, ShouldContain, "--directx-audio-device={0000-1111}")
			So(args, ShouldContain, "--rc-host=localhost:4213")
			So(args, ShouldContain, "--extraintf=rc")
			So(args, ShouldContain, "--intf=dummy")
			So(args, ShouldContain, "--novideo")
			So(args, ShouldNotContain, "--fullscreen")
		})

		Convey("The visible stream renders fullscreen video", func() {
			spec.Visible = true
			args, err := vlc.Args(spec)
			So(err, ShouldBeNil)
			So(args, ShouldContain, "--fullscreen")
			So(args, ShouldNotContain, "--novideo")
		})

		Convey("PulseAudio devices travel through the environment", func() {
			spec.Output = lookupOutput("pulse")
			spec.Device = "alsa_output.usb-headset"

			args, err := vlc.Args(spec)
			So(err, ShouldBeNil)
			for _, arg := range args {
				So(strings.Contains(arg, "alsa_output.usb-headset"), ShouldBeFalse)
			}
			So(vlc.Env(spec), ShouldContain, "PULSE_SINK=alsa_output.usb-headset")
		})

		Convey("Relative files are made absolute", func() {
			spec.File = "talk.mkv"
			args, err := vlc.Args(spec)
			So(err, ShouldBeNil)
			So(strings.HasPrefix(args[0], "/"), ShouldBeTrue)
		})

		Convey("Flag-like files and bad ports are rejected", func() {
			spec.File = "--play-and-exit"
			_, err := vlc.Args(spec)
			So(err, ShouldNotBeNil)

			spec.File = "/media/talk.mkv"
			spec.Port = 70000
			_, err = vlc.Args(spec)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestOutputByName(t *testing.T) {
	Convey("OutputByName", t, func() {
		out, err := OutputByName(" ALSA ")
		So(err, ShouldBeNil)
		So(out.DeviceFlag, ShouldEqual, "--alsa-audio-device")

		_, err = OutputByName("jack")
		So(err, ShouldNotBeNil)

		So(AvailableOutputs(), ShouldHaveLength, 5)
	})
}

func lookupOutput(name string) Output {
	out, err := OutputByName(name)
	if err != nil {
		panic(err)
	}
	return out
}
