package media

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const probeJSON = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264"},
    {"index": 1, "codec_type": "audio", "codec_name": "aac", "channels": 2, "tags": {"language": "eng"}},
    {"index": 2, "codec_type": "audio", "codec_name": "ac3", "channels": 6, "tags": {"language": "fra", "title": "Interprétation"}},
    {"index": 3, "codec_type": "subtitle", "codec_name": "subrip", "tags": {"language": "eng"}},
    {"index": 4, "codec_type": "audio", "codec_name": "opus", "channels": 1}
  ],
  "format": {"duration": "3725.480000"}
}`

func TestFFprobe(t *testing.T) {
	Convey("Given an ffprobe inspector", t, func() {
		var gotArgs []string
		probe := &FFprobe{
			Path: "ffprobe",
			run: func(_ context.Context, _ string, args ...string) ([]byte, error) {
				gotArgs = args
				return []byte(probeJSON), nil
			},
		}

		Convey("It lists only audio tracks, indexed among audio tracks", func() {
			info, err := probe.Inspect(context.Background(), "/media/talk.mkv")
			So(err, ShouldBeNil)
			So(gotArgs[len(gotArgs)-1], ShouldEqual, "/media/talk.mkv")
			So(info.Tracks, ShouldHaveLength, 3)

			So(info.Tracks[0].Index, ShouldEqual, 0)
			So(info.Tracks[0].StreamIndex, ShouldEqual, 1)
			So(info.Tracks[0].Language, ShouldEqual, "eng")
			So(info.Tracks[0].Label, ShouldEqual, "English")

			So(info.Tracks[1].Label, ShouldEqual, "Interprétation")
			So(info.Tracks[1].Channels, ShouldEqual, 6)

			So(info.Tracks[2].Language, ShouldEqual, UnknownLanguage)
			So(info.Tracks[2].Label, ShouldEqual, "Track 3")
		})

		Convey("It truncates the duration to whole seconds", func() {
			info, err := probe.Inspect(context.Background(), "/media/talk.mkv")
			So(err, ShouldBeNil)
			So(info.Duration, ShouldEqual, 3725)
		})

		Convey("It reports execution failures", func() {
			probe.run = func(context.Context, string, ...string) ([]byte, error) {
				return nil, errors.New("exit status 1")
			}
			_, err := probe.Inspect(context.Background(), "/missing.mkv")
			So(err, ShouldNotBeNil)
		})

		Convey("It rejects malformed output", func() {
			probe.run = func(context.Context, string, ...string) ([]byte, error) {
				return []byte("not json"), nil
			}
			_, err := probe.Inspect(context.Background(), "/media/talk.mkv")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLabel(t *testing.T) {
	Convey("Label", t, func() {
		So(Label("Director commentary", "eng", 0), ShouldEqual, "Director commentary")
		So(Label("", "ja", 0), ShouldEqual, "Japanese")
		So(Label("", "", 1), ShouldEqual, "Track 2")
		So(Label("", "und", 4), ShouldEqual, "Track 5")
	})
}
