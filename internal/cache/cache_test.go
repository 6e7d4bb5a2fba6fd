package cache

import (
	"testing"
	"time"

	"github.com/multitracks/multitracks/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

type entry struct {
	Duration int `json:"duration"`
}

func TestStore(t *testing.T) {
	Convey("Given a store", t, func() {
		filesystem.SetMemMapFs()
		store := New("/cache", time.Hour)
		key := Key("/media/film.mkv", "1024")

		Convey("When nothing was written", func() {
			var e entry
			So(store.Read(key, &e), ShouldBeFalse)
		})

		Convey("When an entry is written", func() {
			So(store.Write(key, entry{Duration: 5400}), ShouldBeNil)

			Convey("Then it is read back", func() {
				var e entry
				So(store.Read(key, &e), ShouldBeTrue)
				So(e.Duration, ShouldEqual, 5400)
			})

			Convey("Then garbage collection keeps it", func() {
				removed, err := store.CollectGarbage()
				So(err, ShouldBeNil)
				So(removed, ShouldEqual, 0)
			})

			Convey("Then it expires", func() {
				old := time.Now().Add(-2 * time.Hour)
				So(filesystem.API().Chtimes(store.path(key), old, old), ShouldBeNil)

				var e entry
				So(store.Read(key, &e), ShouldBeFalse)

				removed, err := store.CollectGarbage()
				So(err, ShouldBeNil)
				So(removed, ShouldEqual, 1)
			})
		})
	})

	Convey("Keys depend on every part", t, func() {
		So(Key("a", "b"), ShouldNotEqual, Key("ab"))
		So(Key("a", "b"), ShouldEqual, Key("a", "b"))
		So(Key("a"), ShouldHaveLength, 64)
	})
}
