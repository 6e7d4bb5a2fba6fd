package util

import (
	"testing"

	"github.com/multitracks/multitracks/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "stream", "streams"), ShouldEqual, "1 stream")
		So(Quantify(2, "stream", "streams"), ShouldEqual, "2 streams")
		So(Quantify(0, "stream", "streams"), ShouldEqual, "0 streams")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("history file"), ShouldEqual, "History file")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("/media/film.mkv"), ShouldEqual, "film")
		So(FileStem("film"), ShouldEqual, "film")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(150, 0, 100), ShouldEqual, 100)
		So(Clamp(-5, 0, 100), ShouldEqual, 0)
		So(Clamp(42, 0, 100), ShouldEqual, 42)
	})
}

func TestDelete(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		Convey("When a directory tree is deleted", func() {
			So(fs.MkdirAll("/logs/old", 0o755), ShouldBeNil)
			So(fs.WriteFile("/logs/old/a.log", []byte("x"), 0o644), ShouldBeNil)
			So(Delete("/logs"), ShouldBeNil)

			Convey("Then nothing remains", func() {
				exists, err := fs.Exists("/logs")
				So(err, ShouldBeNil)
				So(exists, ShouldBeFalse)
			})
		})

		Convey("When a missing path is deleted", func() {
			Convey("Then an error is returned", func() {
				So(Delete("/missing"), ShouldNotBeNil)
			})
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 1)
		So(s.Pop(), ShouldEqual, 0)
	})
}
