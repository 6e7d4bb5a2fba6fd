// Package media inspects media files for their audio tracks and duration.
package media

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// UnknownLanguage is the language tag of a track without language metadata.
const UnknownLanguage = "unknown"

// Track describes one audio track of a media file.
type Track struct {
	// Index is the zero-based position among the file's audio tracks; players select tracks by it.
	Index int `json:"index" jsonschema:"description=Zero-based index among the audio tracks."`

	// StreamIndex is the container-level stream number.
	StreamIndex int `json:"stream_index" jsonschema:"description=Container-level stream number."`

	Language string `json:"language" jsonschema:"description=Language tag or unknown."`
	Label    string `json:"label" jsonschema:"description=Human readable track name."`
	Codec    string `json:"codec,omitempty"`
	Channels int    `json:"channels,omitempty"`
}

func (t Track) String() string {
	return t.Label
}

// Info is the result of inspecting a file.
type Info struct {
	File   string  `json:"file"`
	Tracks []Track `json:"tracks"`

	// Duration is the total duration in whole seconds.
	Duration int `json:"duration"`
}

// Inspector lists the audio tracks and duration of media files.
type Inspector interface {
	Inspect(ctx context.Context, file string) (*Info, error)
}

// Label returns the display name of a track: its title when set, otherwise the
// English name of its language, otherwise "Track n" numbered from one.
func Label(title, lang string, index int) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}

	if name := LanguageName(lang); name != "" {
		return name
	}

	return fmt.Sprintf("Track %d", index+1)
}

// LanguageName returns the English display name for a BCP 47 or ISO 639-2 tag, or "" if unknown.
func LanguageName(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" || strings.EqualFold(lang, UnknownLanguage) || strings.EqualFold(lang, "und") {
		return ""
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}

	return display.English.Tags().Name(tag)
}

// NormalizeLanguage returns lang, or UnknownLanguage when it is empty or undetermined.
func NormalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" || strings.EqualFold(lang, "und") {
		return UnknownLanguage
	}
	return lang
}
