package inline

import (
	"encoding/json"
	"io"

	"github.com/multitracks/multitracks/session"
	"github.com/samber/lo"
)

const (
	EventSession  = "session"
	EventPosition = "position"
	EventError    = "error"
	EventQuit     = "quit"
)

// Stream describes one launched stream in a session event.
type Stream struct {
	Port   int    `json:"port"`
	Track  int    `json:"track"`
	Label  string `json:"label"`
	Device string `json:"device"`
}

// Event is one line of JSON output.
type Event struct {
	Type    string `json:"type" jsonschema:"enum=session,enum=position,enum=error,enum=quit"`
	Session string `json:"session"`

	// Position is the elapsed time in seconds.
	Position int    `json:"position"`
	Elapsed  string `json:"elapsed" jsonschema:"description=Position as HH:MM:SS."`
	Duration int    `json:"duration"`

	// Origin is "sync" for positions read from the player and "user" for requested seeks.
	Origin string `json:"origin,omitempty" jsonschema:"enum=sync,enum=user"`
	Paused bool   `json:"paused"`

	Streams []Stream `json:"streams,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func newEvent(kind string, s *session.Session, position session.Position, paused bool) *Event {
	return &Event{
		Type:     kind,
		Session:  s.ID,
		Position: position.Seconds,
		Elapsed:  session.FormatTime(position.Seconds),
		Duration: s.Duration,
		Origin:   position.Origin.String(),
		Paused:   paused,
	}
}

func sessionEvent(s *session.Session) *Event {
	event := newEvent(EventSession, s, session.Position{}, false)
	event.Origin = ""
	event.Streams = lo.Map(s.Streams, func(stream *session.Stream, _ int) Stream {
		return Stream{
			Port:   stream.Port,
			Track:  stream.Track,
			Label:  s.TrackLabel(stream),
			Device: stream.Device.ID,
		}
	})
	return event
}

func writeJson(out io.Writer, event *Event) error {
	return json.NewEncoder(out).Encode(event)
}
