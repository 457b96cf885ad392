package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const maxExporters = 4

type exportOptions struct {
	PNGPath      string
	CellSize     int
	HTMLPath     string
	SnapshotPath string
	DBPath       string
	PGURL        string
}

func (o exportOptions) enabled() bool {
	return o.PNGPath != "" || o.HTMLPath != "" || o.SnapshotPath != "" || o.DBPath != "" || o.PGURL != ""
}

// runExports writes the grid to every configured destination. The grid is
// only read here.
func runExports(ctx context.Context, opts exportOptions, source string, g *Grid) error {
	var eg errgroup.Group
	eg.SetLimit(maxExporters)

	if opts.PNGPath != "" {
		eg.Go(func() error {
			return renderPNG(opts.PNGPath, g, opts.CellSize)
		})
	}
	if opts.HTMLPath != "" || opts.SnapshotPath != "" {
		eg.Go(func() error {
			return writeHTML(opts.HTMLPath, opts.SnapshotPath, source, g)
		})
	}
	if opts.DBPath != "" {
		eg.Go(func() error {
			return exportSQLite(opts.DBPath, source, g)
		})
	}
	if opts.PGURL != "" {
		eg.Go(func() error {
			return exportPG(ctx, opts.PGURL, source, g)
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("error in exporting heatmap [%v]: %w", source, err)
	}
	return nil
}
