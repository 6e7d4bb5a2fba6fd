package session

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatTime(t *testing.T) {
	Convey("FormatTime pads every field and never wraps hours", t, func() {
		So(FormatTime(0), ShouldEqual, "00:00:00")
		So(FormatTime(42), ShouldEqual, "00:00:42")
		So(FormatTime(3725), ShouldEqual, "01:02:05")
		So(FormatTime(86399), ShouldEqual, "23:59:59")
		So(FormatTime(360000), ShouldEqual, "100:00:00")
		So(FormatTime(-5), ShouldEqual, "00:00:00")
	})
}

func TestParseTime(t *testing.T) {
	Convey("ParseTime", t, func() {
		for in, want := range map[string]int{
			"42":       42,
			"90":       90,
			"1:30":     90,
			"01:02:05": 3725,
			"100:0:0":  360000,
		} {
			got, err := ParseTime(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		for _, in := range []string{"", "abc", "1:2:3:4", "1:60", "-1", "1:-1"} {
			_, err := ParseTime(in)
			So(err, ShouldNotBeNil)
		}
	})
}

func TestDefaultTrack(t *testing.T) {
	Convey("Stream i defaults to track i, or the last track", t, func() {
		So(DefaultTrack(0, 3), ShouldEqual, 0)
		So(DefaultTrack(1, 3), ShouldEqual, 1)
		So(DefaultTrack(1, 1), ShouldEqual, 0)
		So(DefaultTrack(4, 2), ShouldEqual, 1)
		So(DefaultTrack(2, 0), ShouldEqual, 0)
	})
}
