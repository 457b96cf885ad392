package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var requestTimeout = time.Minute

const (
	createTablePGDDL = `CREATE TABLE IF NOT EXISTS heatmap(source TEXT, x INTEGER, y INTEGER,
		hits INTEGER, created_at TIMESTAMP, PRIMARY KEY(source, x, y));`
	deleteHeatmapPGSQL = `DELETE FROM heatmap WHERE source = $1`
)

var heatmapPGColumns = []string{"source", "x", "y", "hits", "created_at"}

// exportPG replaces the cells stored for source in postgres.
func exportPG(ctx context.Context, pgURL, source string, g *Grid) error {
	clog.Infof("writing heatmap for [%v] to postgres...", source)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	pgpool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		return fmt.Errorf("error in opening postgres: %w", err)
	}
	defer pgpool.Close()

	if _, err := pgpool.Exec(ctx, createTablePGDDL); err != nil {
		return fmt.Errorf("error in creating table [heatmap]: %w", err)
	}

	return syncCellsToPG(ctx, pgpool, source, g.Cells())
}

// syncCellsToPG deletes and copies in one transaction, so a failed copy
// leaves the previous cells of source in place.
func syncCellsToPG(ctx context.Context, pgpool *pgxpool.Pool, source string, cells []Cell) (err error) {
	tx, err := pgpool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting pg transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, deleteHeatmapPGSQL, source); err != nil {
		return fmt.Errorf("error in clearing heatmap [%v]: %w", source, err)
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, []any{source, c.X, c.Y, c.Count, now})
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"heatmap"}, heatmapPGColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("error copying cells into postgres [%v]: %w", source, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing pg transaction: %w", err)
	}

	clog.Debugf("synced [%v] rows to postgres", copied)
	return nil
}
