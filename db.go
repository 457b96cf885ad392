package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	heatmapTableDDL  = `CREATE TABLE IF NOT EXISTS heatmap(source VARCHAR, x INTEGER, y INTEGER, hits INTEGER, created_at TEXT, PRIMARY KEY(source, x, y))`
	deleteHeatmapSQL = `DELETE FROM heatmap WHERE source = ?`
	insertHeatmapSQL = `INSERT OR REPLACE INTO heatmap(source, x, y, hits, created_at) VALUES(?, ?, ?, ?, ?)`
)

var (
	migrations = []string{
		"CREATE INDEX IF NOT EXISTS idx_heatmap_source ON heatmap(source);",
	}
)

// exportSQLite replaces the cells stored for source with the non-empty
// cells of g.
func exportSQLite(dbPath, source string, g *Grid) error {
	clog.Infof("writing heatmap for [%v] to sqlite [%v]...", source, dbPath)

	db, closeDB, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := initDB(db); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting sqlite transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(deleteHeatmapSQL, source); err != nil {
		return fmt.Errorf("error in clearing heatmap [%v]: %w", source, err)
	}

	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	for _, c := range g.Cells() {
		if _, err = tx.Exec(insertHeatmapSQL, source, c.X, c.Y, c.Count, now); err != nil {
			return fmt.Errorf("error in inserting cell [%v, %v]: %w", c.X, c.Y, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing sqlite transaction: %w", err)
	}
	return nil
}

func initDB(db *sql.DB) error {
	if _, err := db.Exec(heatmapTableDDL); err != nil {
		return fmt.Errorf("error in creating table [heatmap]: %w", err)
	}

	if err := migrateDB(db); err != nil {
		return fmt.Errorf("error in migrating db: %w", err)
	}

	return nil
}

func migrateDB(db *sql.DB) error {
	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil && !strings.Contains(err.Error(), "duplicate") &&
			!strings.Contains(err.Error(), "already exists") {

			return fmt.Errorf("error in migrating db: %w", err)
		}
	}
	return nil
}

func openDB(dbPath string) (*sql.DB, func(), error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error in opening db [%v]: %w", dbPath, err)
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			clog.Errorf("error in closing db [%v]: %v", dbPath, err)
		}
	}

	return db, closeDB, nil
}
