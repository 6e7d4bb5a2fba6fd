package cmd

import (
	"sort"
	"time"

	"github.com/multitracks/multitracks/device"
	"github.com/multitracks/multitracks/internal/cache"
	"github.com/multitracks/multitracks/key"
	"github.com/multitracks/multitracks/log"
	"github.com/multitracks/multitracks/media"
	"github.com/multitracks/multitracks/player"
	"github.com/multitracks/multitracks/session"
	"github.com/multitracks/multitracks/util"
	"github.com/multitracks/multitracks/where"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newController() *session.Controller {
	options, err := session.OptionsFromConfig()
	handleErr(err)

	return session.New(player.NewVLC(), player.ClientFromConfig(), options)
}

// inspectionCache is None when caching is disabled.
func inspectionCache() mo.Option[*cache.Store] {
	ttl := time.Duration(viper.GetInt(key.MediaCacheTTL)) * time.Hour
	if ttl <= 0 {
		return mo.None[*cache.Store]()
	}
	return mo.Some(cache.New(where.Cache(), ttl))
}

func newInspector() media.Inspector {
	ffprobe := media.NewFFprobe()

	if store, ok := inspectionCache().Get(); ok {
		return media.NewCached(ffprobe, store)
	}
	return ffprobe
}

func newCatalog() device.Catalog {
	catalog, err := device.FromConfig()
	handleErr(err)
	return catalog
}

// CollectGarbage prunes expired inspection results.
func CollectGarbage() {
	store, ok := inspectionCache().Get()
	if !ok {
		return
	}

	removed, err := store.CollectGarbage()
	if err != nil {
		log.Warnf("collect cache garbage: %v", err)
		return
	}

	if removed > 0 {
		log.Debugf("removed %s", util.Quantify(removed, "expired cache entry", "expired cache entries"))
	}
}

func completionOutputs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	outputs := player.AvailableOutputs()
	sort.Strings(outputs)
	return outputs, cobra.ShellCompDirectiveNoFileComp
}
