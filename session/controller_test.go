package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/multitracks/multitracks/device"
	"github.com/multitracks/multitracks/filesystem"
	"github.com/multitracks/multitracks/media"
	"github.com/multitracks/multitracks/player"
	. "github.com/smartystreets/goconvey/convey"
)

const film = "/media/film.mkv"

var devices = []device.Device{
	{ID: "sink-main", Name: "Main Hall"},
	{ID: "sink-booth-a", Name: "Booth A"},
	{ID: "sink-booth-b", Name: "Booth B"},
}

var tracks = []media.Track{
	{Index: 0, Language: "eng", Label: "English"},
	{Index: 1, Language: "fra", Label: "French"},
	{Index: 2, Language: "deu", Label: "German"},
}

func testOptions() Options {
	return Options{
		Executable: "vlc",
		Host:       "localhost",
		BasePort:   4212,
		Output:     player.Output{Module: "pulse", DeviceEnv: "PULSE_SINK"},
		Fullscreen: true,
	}
}

func request(n int) Request {
	return Request{
		File:     film,
		Duration: 5400,
		Tracks:   tracks,
		Devices:  devices,
		Streams:  DefaultRequests(n, len(tracks), devices),
	}
}

func setupFile() {
	filesystem.SetMemMapFs()
	_ = filesystem.API().WriteFile(film, []byte("not really a film"), 0o644)
}

func TestLaunch(t *testing.T) {
	Convey("Given a controller with fake players", t, func() {
		setupFile()
		launcher, commander := newFakeLauncher(), newFakeCommander()
		c := New(launcher, commander, testOptions())
		ctx := context.Background()

		Convey("Launching N streams assigns N contiguous ports from the base", func() {
			for _, n := range []int{2, 3} {
				launcher.specs = nil
				s, err := c.Launch(ctx, request(n))
				So(err, ShouldBeNil)

				So(s.Ports(), ShouldHaveLength, n)
				for i, port := range s.Ports() {
					So(port, ShouldEqual, 4212+i)
					So(launcher.specs[i].Port, ShouldEqual, 4212+i)
				}

				So(c.Quit(ctx), ShouldBeNil)
			}
		})

		Convey("Only the first stream is visible", func() {
			s, err := c.Launch(ctx, request(3))
			So(err, ShouldBeNil)

			So(launcher.specs[0].Visible, ShouldBeTrue)
			So(launcher.specs[1].Visible, ShouldBeFalse)
			So(launcher.specs[2].Visible, ShouldBeFalse)
			So(s.Reference().Index, ShouldEqual, 0)
		})

		Convey("Track, device, file and output are passed through to the launcher", func() {
			req := request(2)
			req.Streams = []StreamRequest{{Track: 2, Device: "Booth B"}, {Track: 0, Device: "sink-main"}}

			s, err := c.Launch(ctx, req)
			So(err, ShouldBeNil)

			So(launcher.specs[0].Track, ShouldEqual, 2)
			So(launcher.specs[0].Device, ShouldEqual, "sink-booth-b")
			So(launcher.specs[1].Device, ShouldEqual, "sink-main")
			So(launcher.specs[0].File, ShouldEqual, film)
			So(launcher.specs[0].Output.Module, ShouldEqual, "pulse")
			So(s.TrackLabel(s.Streams[0]), ShouldEqual, "German")
			So(s.Streams[1].Volume, ShouldEqual, DefaultVolume)
		})

		Convey("Validation failures launch nothing", func() {
			cases := map[string]func(*Request){
				"missing file":    func(r *Request) { r.File = "" },
				"unknown file":    func(r *Request) { r.File = "/media/other.mkv" },
				"directory":       func(r *Request) { r.File = "/media" },
				"no streams":      func(r *Request) { r.Streams = nil },
				"track too large": func(r *Request) { r.Streams[1].Track = 3 },
				"negative track":  func(r *Request) { r.Streams[0].Track = -1 },
				"no device":       func(r *Request) { r.Streams[1].Device = "" },
				"unknown device":  func(r *Request) { r.Streams[0].Device = "projector" },
			}

			for name, mutate := range cases {
				req := request(2)
				mutate(&req)

				_, err := c.Launch(ctx, req)

				var verr *ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(launcher.specs, ShouldBeEmpty)
				So(c.Active(), ShouldBeFalse)
				_ = name
			}
		})

		Convey("Ports past 65535 are rejected", func() {
			opts := testOptions()
			opts.BasePort = 65535
			c := New(launcher, commander, opts)

			_, err := c.Launch(ctx, request(2))
			var verr *ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
		})

		Convey("A failing launch kills the players already started", func() {
			launcher.failAt = 2

			_, err := c.Launch(ctx, request(3))
			So(err, ShouldNotBeNil)
			So(launcher.processes, ShouldHaveLength, 2)
			So(launcher.processes[0].killed, ShouldBeTrue)
			So(launcher.processes[1].killed, ShouldBeTrue)
			So(c.Active(), ShouldBeFalse)
		})

		Convey("A second launch is refused while a session is active", func() {
			_, err := c.Launch(ctx, request(2))
			So(err, ShouldBeNil)

			_, err = c.Launch(ctx, request(2))
			So(err, ShouldEqual, ErrSessionActive)
		})

		Convey("A cancelled context interrupts the settle delay", func() {
			opts := testOptions()
			opts.SettleDelay = time.Hour
			c := New(launcher, commander, opts)

			ctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := c.Launch(ctx, request(2))
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(launcher.processes[0].killed, ShouldBeTrue)
			So(c.Active(), ShouldBeFalse)
		})
	})
}

func TestCommands(t *testing.T) {
	Convey("Given a launched session of three streams", t, func() {
		setupFile()
		launcher, commander := newFakeLauncher(), newFakeCommander()
		c := New(launcher, commander, testOptions())
		ctx := context.Background()

		_, err := c.Launch(ctx, request(3))
		So(err, ShouldBeNil)

		Convey("Commands before launch or after quit fail with ErrNoSession", func() {
			So(c.Quit(ctx), ShouldBeNil)
			So(c.Play(ctx), ShouldEqual, ErrNoSession)
			So(c.Seek(ctx, 10), ShouldEqual, ErrNoSession)
			_, err := c.CurrentTime(ctx)
			So(err, ShouldEqual, ErrNoSession)
		})

		Convey("Play is sent to every port in ascending order", func() {
			So(c.Play(ctx), ShouldBeNil)
			So(commander.lines(), ShouldResemble, []sent{
				{4212, "play"}, {4213, "play"}, {4214, "play"},
			})
			So(c.Paused(), ShouldBeFalse)
		})

		Convey("Play reports one unreachable error per refused stream", func() {
			commander.refused[4212] = true
			commander.refused[4214] = true

			err := c.Play(ctx)
			So(err, ShouldNotBeNil)

			joined, ok := err.(interface{ Unwrap() []error })
			So(ok, ShouldBeTrue)
			So(joined.Unwrap(), ShouldHaveLength, 2)

			var unreachable *UnreachableError
			So(errors.As(joined.Unwrap()[0], &unreachable), ShouldBeTrue)
			So(unreachable.Port, ShouldEqual, 4212)
			So(errors.As(joined.Unwrap()[1], &unreachable), ShouldBeTrue)
			So(unreachable.Port, ShouldEqual, 4214)

			So(commander.lines(), ShouldResemble, []sent{{4213, "play"}})

			Convey("Unreachable lists the refused streams", func() {
				found := Unreachable(err)
				So(found, ShouldHaveLength, 2)
				So(found[0].Stream, ShouldEqual, 0)
				So(found[1].Stream, ShouldEqual, 2)

				So(Unreachable(fmt.Errorf("start: %w", found[1])), ShouldHaveLength, 1)
				So(Unreachable(ErrNoSession), ShouldBeEmpty)
				So(Unreachable(nil), ShouldBeEmpty)
			})

			Convey("The reachable stream keeps the session playing", func() {
				So(StillPlaying(err, 3), ShouldBeTrue)
				So(StillPlaying(err, 2), ShouldBeFalse)
				So(StillPlaying(nil, 3), ShouldBeTrue)
				So(StillPlaying(ErrNoSession, 3), ShouldBeFalse)
			})
		})

		Convey("Seek broadcasts the same line to every port in ascending order", func() {
			So(c.Seek(ctx, 754), ShouldBeNil)
			So(commander.lines(), ShouldResemble, []sent{
				{4212, "seek 754"}, {4213, "seek 754"}, {4214, "seek 754"},
			})

			Convey("And publishes the requested position as a user position", func() {
				p, ok := c.Position().Get()
				So(ok, ShouldBeTrue)
				So(p, ShouldResemble, Position{Seconds: 754, Origin: OriginUser})
			})
		})

		Convey("Seek to a negative position is a validation error", func() {
			var verr *ValidationError
			So(errors.As(c.Seek(ctx, -1), &verr), ShouldBeTrue)
			So(commander.lines(), ShouldBeEmpty)
		})

		Convey("Seek failures are not surfaced", func() {
			commander.refused[4213] = true
			So(c.Seek(ctx, 5), ShouldBeNil)
			So(commander.lines(), ShouldHaveLength, 2)
		})

		Convey("Relative seeks start from the last position and stay within the file", func() {
			So(c.Seek(ctx, 100), ShouldBeNil)
			So(c.SeekRelative(ctx, -10), ShouldBeNil)
			So(c.Position().MustGet().Seconds, ShouldEqual, 90)

			So(c.SeekRelative(ctx, -1000), ShouldBeNil)
			So(c.Position().MustGet().Seconds, ShouldEqual, 0)

			So(c.SeekRelative(ctx, 99999), ShouldBeNil)
			So(c.Position().MustGet().Seconds, ShouldEqual, 5400)
		})

		Convey("Volume maps 0-100 onto 0-512 rounding down and targets one port", func() {
			for level, want := range map[int]string{
				0:   "volume 0",
				1:   "volume 5",
				33:  "volume 168",
				50:  "volume 256",
				99:  "volume 506",
				100: "volume 512",
			} {
				commander.reset()
				So(c.SetVolume(ctx, 1, level), ShouldBeNil)
				So(commander.lines(), ShouldResemble, []sent{{4213, want}})
			}
		})

		Convey("Volume records the level on the stream", func() {
			So(c.SetVolume(ctx, 2, 40), ShouldBeNil)
			s := c.Session().MustGet()
			So(s.Streams[2].Volume, ShouldEqual, 40)
			So(s.Streams[0].Volume, ShouldEqual, DefaultVolume)
		})

		Convey("Volume outside the range or stream list is rejected", func() {
			var verr *ValidationError
			So(errors.As(c.SetVolume(ctx, 0, 101), &verr), ShouldBeTrue)
			So(errors.As(c.SetVolume(ctx, 0, -1), &verr), ShouldBeTrue)
			So(errors.As(c.SetVolume(ctx, 3, 50), &verr), ShouldBeTrue)
			So(commander.lines(), ShouldBeEmpty)
		})

		Convey("AdjustVolume clamps into 0-100", func() {
			So(c.AdjustVolume(ctx, 0, 20), ShouldBeNil)
			So(c.Session().MustGet().Streams[0].Volume, ShouldEqual, 100)

			So(c.AdjustVolume(ctx, 0, -30), ShouldBeNil)
			So(c.Session().MustGet().Streams[0].Volume, ShouldEqual, 70)
			So(commander.lines()[1], ShouldResemble, sent{4212, "volume 358"})
		})

		Convey("Pause broadcasts then reads back the reference stream", func() {
			commander.replies[4212] = "42"

			So(c.Pause(ctx), ShouldBeNil)
			So(commander.lines(), ShouldResemble, []sent{
				{4212, "pause"}, {4213, "pause"}, {4214, "pause"},
			})
			So(commander.queries, ShouldResemble, []sent{{4212, "get_time"}})
			So(c.Position().MustGet(), ShouldResemble, Position{Seconds: 42, Origin: OriginSync})
			So(c.Paused(), ShouldBeTrue)
		})

		Convey("Pause surfaces a failing read-back", func() {
			commander.refused[4212] = true

			var unreachable *UnreachableError
			So(errors.As(c.Pause(ctx), &unreachable), ShouldBeTrue)
		})

		Convey("CurrentTime returns None for non numeric replies", func() {
			commander.replies[4212] = "N/A"
			elapsed, err := c.CurrentTime(ctx)
			So(err, ShouldBeNil)
			So(elapsed.IsAbsent(), ShouldBeTrue)
		})

		Convey("Quit", func() {
			Convey("sends quit to every port even when one is unreachable", func() {
				commander.refused[4213] = true

				So(c.Quit(ctx), ShouldBeNil)
				So(commander.lines(), ShouldResemble, []sent{{4212, "quit"}, {4214, "quit"}})
				So(c.Active(), ShouldBeFalse)
			})

			Convey("does not surface other transport failures either", func() {
				commander.broken[4212] = true
				So(c.Quit(ctx), ShouldBeNil)
			})

			Convey("never kills processes", func() {
				So(c.Quit(ctx), ShouldBeNil)
				for _, p := range launcher.processes {
					So(p.killed, ShouldBeFalse)
				}
			})

			Convey("is idempotent", func() {
				So(c.Quit(ctx), ShouldBeNil)
				commander.reset()
				So(c.Quit(ctx), ShouldBeNil)
				So(commander.lines(), ShouldBeEmpty)
			})
		})
	})
}

func TestPolling(t *testing.T) {
	Convey("Given a launched session", t, func() {
		setupFile()
		commander := newFakeCommander()
		c := New(newFakeLauncher(), commander, testOptions())
		ctx := context.Background()

		_, err := c.Launch(ctx, request(2))
		So(err, ShouldBeNil)

		Convey("A numeric reply updates the position", func() {
			commander.replies[4212] = "42"
			c.PollPosition(ctx)

			p := c.Position().MustGet()
			So(p.Seconds, ShouldEqual, 42)
			So(p.Origin, ShouldEqual, OriginSync)
			So(FormatTime(p.Seconds), ShouldEqual, "00:00:42")
		})

		Convey("Unknown replies and failures keep the previous position", func() {
			commander.replies[4212] = "42"
			c.PollPosition(ctx)

			for _, reply := range []string{"N/A", "", "-3", "12.5"} {
				commander.replies[4212] = reply
				c.PollPosition(ctx)
				So(c.Position().MustGet().Seconds, ShouldEqual, 42)
			}

			commander.refused[4212] = true
			c.PollPosition(ctx)
			So(c.Position().MustGet().Seconds, ShouldEqual, 42)
		})

		Convey("Polling only queries the reference stream and never seeks", func() {
			commander.replies[4212] = "300"
			for i := 0; i < 3; i++ {
				c.PollPosition(ctx)
			}

			So(commander.lines(), ShouldBeEmpty)
			for _, q := range commander.queries {
				So(q, ShouldResemble, sent{4212, "get_time"})
			}
		})

		Convey("Polling without a session does nothing", func() {
			So(c.Quit(ctx), ShouldBeNil)
			commander.reset()
			c.PollPosition(ctx)
			So(commander.queries, ShouldBeEmpty)
			So(c.Position().IsPresent(), ShouldBeFalse)
		})
	})

	Convey("Given a controller with a short poll interval", t, func() {
		setupFile()
		commander := newFakeCommander()
		commander.replies[4212] = "7"

		opts := testOptions()
		opts.PollInterval = 5 * time.Millisecond
		c := New(newFakeLauncher(), commander, opts)
		ctx := context.Background()

		_, err := c.Launch(ctx, request(2))
		So(err, ShouldBeNil)

		positions, unsubscribe := c.Subscribe()

		Convey("Play starts the timer and subscribers receive polled positions", func() {
			So(c.Play(ctx), ShouldBeNil)

			select {
			case p := <-positions:
				So(p, ShouldResemble, Position{Seconds: 7, Origin: OriginSync})
			case <-time.After(2 * time.Second):
				So("no position received", ShouldBeEmpty)
			}

			So(c.Quit(ctx), ShouldBeNil)
		})

		Convey("An unsubscribed channel receives nothing more", func() {
			unsubscribe()
			c.publish(Position{Seconds: 3, Origin: OriginUser})

			select {
			case <-positions:
				So("position delivered after unsubscribe", ShouldBeEmpty)
			default:
			}

			c.mu.Lock()
			So(c.subscribers, ShouldBeEmpty)
			c.mu.Unlock()

			So(c.Quit(ctx), ShouldBeNil)
		})
	})
}
