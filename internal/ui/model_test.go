package ui

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notification model", t, func() {
		m := &Model{}

		Convey("When nothing was notified", func() {
			Convey("Then the view is unchanged", func() {
				So(m.View("a\nb"), ShouldEqual, "a\nb")
			})
		})

		Convey("When a notification arrives", func() {
			cmd := m.Update(Notify("stream 2 unreachable")())
			So(cmd, ShouldNotBeNil)

			Convey("Then it is appended to the last line", func() {
				view := m.View("a\nb")
				So(strings.HasPrefix(view, "a\nb  "), ShouldBeTrue)
				So(view, ShouldContainSubstring, "stream 2 unreachable")
			})

			Convey("Then a stale clear keeps it", func() {
				m.Update(ClearNotificationMsg{})
				So(m.Current(), ShouldEqual, "stream 2 unreachable")
			})

			Convey("Then its own clear removes it", func() {
				m.Update(ClearNotificationMsg{at: m.notifiedAt})
				So(m.Current(), ShouldBeEmpty)
			})
		})

		Convey("When the configuration is reloaded", func() {
			m.Update(NotifyConfigReloaded("/home/u/.config/multitracks/multitracks.toml"))

			Convey("Then the path is shown", func() {
				So(m.Current(), ShouldContainSubstring, "multitracks.toml")
			})
		})
	})
}
