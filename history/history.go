// Package history remembers the last session played for each file so it can be resumed.
package history

import (
	"github.com/metafates/gache"
	"github.com/multitracks/multitracks/filesystem"
	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/session"
	"github.com/multitracks/multitracks/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// cacher provides a disk-backed registry of saved sessions keyed by file.
var cacher = gache.New[map[string]*SavedSession](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every saved session keyed by file.
func Get() (map[string]*SavedSession, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedSession), nil
	}
	return cached, nil
}

// Last returns the most recently saved session.
func Last() (mo.Option[*SavedSession], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*SavedSession](), err
	}

	if len(saved) == 0 {
		return mo.None[*SavedSession](), nil
	}

	last := lo.MaxBy(lo.Values(saved), func(a, b *SavedSession) bool {
		return a.SavedAt.After(b.SavedAt)
	})
	return mo.Some(last), nil
}

// Save records the stream assignments of s and the position reached.
// It does nothing when history is disabled.
func Save(s *session.Session, position int) error {
	if !viper.GetBool(key.HistorySave) {
		return nil
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedSession(s, position)
	saved[record.File] = record

	return cacher.Set(saved)
}

// Remove deletes the saved session of file.
func Remove(file string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, file)
	return cacher.Set(saved)
}
