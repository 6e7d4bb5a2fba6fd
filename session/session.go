// Package session keeps several player processes playing one file in step.
//
// A Controller launches one player per Stream, each decoding its own audio track
// to its own output device, and fans every transport command out to all of them.
package session

import (
	"time"

	"github.com/multitracks/multitracks/device"
	"github.com/multitracks/multitracks/media"
	"github.com/multitracks/multitracks/player"
	"github.com/samber/lo"
)

const (
	// DefaultVolume is the level of a freshly launched stream, on the 0-100 scale.
	DefaultVolume = 100
	MaxVolume     = 100

	// playerVolumeScale is the top of the player's native volume range.
	playerVolumeScale = 512
)

// Stream is one playback process bound to one audio track and one output device.
type Stream struct {
	// Index is the zero-based ordinal of the stream. It fixes the control port.
	Index int
	Port  int

	// Track indexes the session's audio tracks.
	Track  int
	Device device.Device
	Volume int

	// Visible streams render video; the others are audio-only.
	Visible bool

	Process player.Process
}

// Session is the set of streams launched together against one file.
type Session struct {
	ID string

	// File is the absolute path of the media file.
	File string

	// Duration in whole seconds, zero when unknown.
	Duration int

	Tracks    []media.Track
	Streams   []*Stream
	StartedAt time.Time
}

// Reference returns the stream whose clock drives the shown position.
func (s *Session) Reference() *Stream {
	return s.Streams[0]
}

// Ports returns the control ports in ascending order.
func (s *Session) Ports() []int {
	return lo.Map(s.Streams, func(stream *Stream, _ int) int {
		return stream.Port
	})
}

// TrackLabel returns the label of the stream's track, or "" when tracks are unknown.
func (s *Session) TrackLabel(stream *Stream) string {
	if stream.Track < 0 || stream.Track >= len(s.Tracks) {
		return ""
	}
	return s.Tracks[stream.Track].Label
}

func (s *Session) clone() *Session {
	c := *s
	c.Streams = lo.Map(s.Streams, func(stream *Stream, _ int) *Stream {
		copied := *stream
		return &copied
	})
	return &c
}

// StreamRequest assigns a track and an output device to one stream.
type StreamRequest struct {
	// Track is the zero-based audio track index.
	Track int `json:"track"`

	// Device selects an output device by ID or name.
	Device string `json:"device"`
}

// Request describes a session to launch.
type Request struct {
	File string

	// Duration in whole seconds, as reported by the media inspector.
	Duration int

	// Tracks are the file's audio tracks. When empty, track indices are not range checked.
	Tracks []media.Track

	// Devices is the catalog that stream device selectors are resolved against.
	Devices []device.Device

	Streams []StreamRequest
}

// DefaultTrack returns the track assigned to stream i when the user picks none: the i-th track, or the last one.
func DefaultTrack(i, tracks int) int {
	if tracks <= 0 {
		return 0
	}
	return min(i, tracks-1)
}

// DefaultRequests returns one request per stream using DefaultTrack and the first device.
func DefaultRequests(streams, tracks int, devices []device.Device) []StreamRequest {
	var dev string
	if len(devices) > 0 {
		dev = devices[0].ID
	}

	return lo.Times(streams, func(i int) StreamRequest {
		return StreamRequest{Track: DefaultTrack(i, tracks), Device: dev}
	})
}

// playerVolume maps a 0-100 level onto the player's 0-512 scale, rounding down.
func playerVolume(level int) int {
	return level * playerVolumeScale / MaxVolume
}
