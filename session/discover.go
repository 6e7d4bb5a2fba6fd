package session

import (
	"context"
	"fmt"

	"github.com/multitracks/multitracks/device"
	"github.com/multitracks/multitracks/media"
	"golang.org/x/sync/errgroup"
)

// Discovery is what the user chooses from before launching.
type Discovery struct {
	Info    *media.Info
	Devices []device.Device
}

// Request builds a launch request for the discovered file.
func (d *Discovery) Request(streams []StreamRequest) Request {
	return Request{
		File:     d.Info.File,
		Duration: d.Info.Duration,
		Tracks:   d.Info.Tracks,
		Devices:  d.Devices,
		Streams:  streams,
	}
}

// Discover inspects file and enumerates output devices concurrently.
// A file without audio tracks is a validation error.
func Discover(ctx context.Context, inspector media.Inspector, catalog device.Catalog, file string) (*Discovery, error) {
	var d Discovery

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		info, err := inspector.Inspect(ctx, file)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", file, err)
		}
		d.Info = info
		return nil
	})

	g.Go(func() error {
		devices, err := catalog.Devices(ctx)
		if err != nil {
			return fmt.Errorf("list audio devices: %w", err)
		}
		d.Devices = devices
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(d.Info.Tracks) == 0 {
		return nil, invalid("file", "no audio tracks detected")
	}

	return &d, nil
}
