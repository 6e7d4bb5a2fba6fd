package session

import (
	"fmt"
	"strconv"
	"strings"
)

// Origin tells where a position came from.
type Origin int

const (
	// OriginSync positions were read back from the reference stream.
	// They must never be turned into a seek.
	OriginSync Origin = iota

	// OriginUser positions were requested by the user and already sent as a seek.
	OriginUser
)

func (o Origin) String() string {
	switch o {
	case OriginSync:
		return "sync"
	case OriginUser:
		return "user"
	default:
		return "unknown"
	}
}

// Position is a published playback position.
type Position struct {
	Seconds int
	Origin  Origin
}

func (p Position) String() string {
	return FormatTime(p.Seconds)
}

// FormatTime renders seconds as zero-padded HH:MM:SS. Hours are not wrapped.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// ParseTime reads "SS", "MM:SS" or "HH:MM:SS" into seconds.
func ParseTime(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time")
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	var total int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		// Only the leading field may exceed 59.
		if i > 0 && n > 59 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		total = total*60 + n
	}

	return total, nil
}
