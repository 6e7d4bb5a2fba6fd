package media

import (
	"context"
	"strconv"

	"github.com/multitracks/multitracks/filesystem"
	"github.com/multitracks/multitracks/internal/cache"
	"github.com/multitracks/multitracks/log"
)

// Cached remembers the result of an Inspector per file revision.
// A file whose size or modification time changes is inspected again.
type Cached struct {
	Inspector Inspector
	store     *cache.Store
}

// NewCached wraps inspector with store.
func NewCached(inspector Inspector, store *cache.Store) *Cached {
	return &Cached{Inspector: inspector, store: store}
}

func (c *Cached) Inspect(ctx context.Context, file string) (*Info, error) {
	stat, err := filesystem.API().Stat(file)
	if err != nil {
		return c.Inspector.Inspect(ctx, file)
	}

	key := cache.Key(
		file,
		strconv.FormatInt(stat.Size(), 10),
		strconv.FormatInt(stat.ModTime().UnixNano(), 10),
	)

	var cached Info
	if c.store.Read(key, &cached) {
		log.Debugf("inspection of %s served from cache", file)
		return &cached, nil
	}

	info, err := c.Inspector.Inspect(ctx, file)
	if err != nil {
		return nil, err
	}

	if err := c.store.Write(key, info); err != nil {
		log.Warnf("cache inspection of %s: %v", file, err)
	}

	return info, nil
}
