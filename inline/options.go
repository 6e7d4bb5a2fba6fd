package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/multitracks/multitracks/media"
	"github.com/multitracks/multitracks/session"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type Options struct {
	// Out receives position reports, one per line.
	Out io.Writer

	// Err receives command errors. They never stop the run.
	Err io.Writer

	// In is read line by line for commands. A nil reader waits for the context instead.
	In io.Reader

	Json    bool
	Request session.Request

	// Resume seeks to this position right after playback starts.
	Resume mo.Option[int]
}

// ParseAssignment parses a "TRACK:DEVICE" stream assignment.
// TRACK is a zero-based track index, a language tag or a track label.
// DEVICE is a device ID or name and may itself contain colons.
func ParseAssignment(value string, tracks []media.Track) (session.StreamRequest, error) {
	trackSelector, deviceSelector, ok := strings.Cut(value, ":")
	if !ok || strings.TrimSpace(trackSelector) == "" || strings.TrimSpace(deviceSelector) == "" {
		return session.StreamRequest{}, fmt.Errorf("invalid stream %q, expected TRACK:DEVICE", value)
	}

	track, err := ParseTrack(trackSelector, tracks)
	if err != nil {
		return session.StreamRequest{}, err
	}

	return session.StreamRequest{Track: track, Device: strings.TrimSpace(deviceSelector)}, nil
}

// ParseTrack resolves a track selector to a track index.
func ParseTrack(selector string, tracks []media.Track) (int, error) {
	selector = strings.TrimSpace(selector)

	if index, err := strconv.Atoi(selector); err == nil {
		if index < 0 || index >= len(tracks) {
			return 0, fmt.Errorf("track %d does not exist, the file has %d", index, len(tracks))
		}
		return index, nil
	}

	track, ok := lo.Find(tracks, func(t media.Track) bool {
		return strings.EqualFold(t.Language, selector) || strings.EqualFold(t.Label, selector)
	})
	if !ok {
		return 0, fmt.Errorf("no track matches %q", selector)
	}

	return track.Index, nil
}
