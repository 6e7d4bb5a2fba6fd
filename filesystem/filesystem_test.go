package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Given the in-memory backend", t, func() {
		SetMemMapFs()
		defer SetOsFs()

		So(API().Name(), ShouldEqual, "MemMapFS")

		Convey("The gache adapter writes through it", func() {
			var fs GacheFs
			So(fs.MkdirAll("/sessions", os.ModePerm), ShouldBeNil)

			file, err := fs.OpenFile("/sessions/a.json", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			_, err = file.Write([]byte("{}"))
			So(err, ShouldBeNil)
			So(file.Close(), ShouldBeNil)

			data, err := API().ReadFile("/sessions/a.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "{}")
		})
	})

	Convey("Given the OS backend", t, func() {
		SetOsFs()
		So(API().Name(), ShouldEqual, "OsFs")
	})
}
