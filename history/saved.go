package history

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/multitracks/multitracks/session"
	"github.com/samber/lo"
)

// SavedStream is the assignment of one stream.
type SavedStream struct {
	Track    int    `json:"track"`
	DeviceID string `json:"device_id"`
}

// SavedSession is a session preserved for resuming.
type SavedSession struct {
	File     string        `json:"file"`
	Duration int           `json:"duration"`
	Streams  []SavedStream `json:"streams"`

	// Position is the last known elapsed time in seconds.
	Position int       `json:"position"`
	SavedAt  time.Time `json:"saved_at"`
}

func (s *SavedSession) String() string {
	return fmt.Sprintf("%s @ %s (%d streams)", filepath.Base(s.File), session.FormatTime(s.Position), len(s.Streams))
}

// Requests returns the stream assignments as launch requests.
func (s *SavedSession) Requests() []session.StreamRequest {
	return lo.Map(s.Streams, func(stream SavedStream, _ int) session.StreamRequest {
		return session.StreamRequest{Track: stream.Track, Device: stream.DeviceID}
	})
}

func newSavedSession(s *session.Session, position int) *SavedSession {
	return &SavedSession{
		File:     s.File,
		Duration: s.Duration,
		Streams: lo.Map(s.Streams, func(stream *session.Stream, _ int) SavedStream {
			return SavedStream{Track: stream.Track, DeviceID: stream.Device.ID}
		}),
		Position: position,
		SavedAt:  time.Now(),
	}
}
