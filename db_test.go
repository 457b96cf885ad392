package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "heatmap.db")

	var g Grid
	g[2][2] = 3
	g[10][40] = 1
	require.NoError(t, exportSQLite(dbPath, "runtimes.data", &g))

	db, closeDB, err := openDB(dbPath)
	require.NoError(t, err)
	defer closeDB()

	var cells, hits int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*), SUM(hits) FROM heatmap WHERE source = ?`, "runtimes.data").
		Scan(&cells, &hits))
	assert.Equal(t, 2, cells)
	assert.Equal(t, 4, hits)

	var count int
	require.NoError(t, db.QueryRow(`SELECT hits FROM heatmap WHERE source = ? AND x = ? AND y = ?`,
		"runtimes.data", 10, 40).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestExportSQLite_ReplacesSource(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "heatmap.db")

	var first, second, other Grid
	first[1][1] = 5
	first[3][3] = 2
	second[4][4] = 1
	other[0][0] = 9

	require.NoError(t, exportSQLite(dbPath, "a.data", &first))
	require.NoError(t, exportSQLite(dbPath, "b.data", &other))
	// running again must not fail on the migrations and must drop stale cells
	require.NoError(t, exportSQLite(dbPath, "a.data", &second))

	db, closeDB, err := openDB(dbPath)
	require.NoError(t, err)
	defer closeDB()

	rows, err := db.Query(`SELECT x, y, hits FROM heatmap WHERE source = ? ORDER BY x, y`, "a.data")
	require.NoError(t, err)
	defer rows.Close()

	got := []Cell{}
	for rows.Next() {
		var c Cell
		require.NoError(t, rows.Scan(&c.X, &c.Y, &c.Count))
		got = append(got, c)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []Cell{{X: 4, Y: 4, Count: 1}}, got)

	var otherHits int
	require.NoError(t, db.QueryRow(`SELECT SUM(hits) FROM heatmap WHERE source = ?`, "b.data").Scan(&otherHits))
	assert.Equal(t, 9, otherHits)
}

func TestMigrateDB_Idempotent(t *testing.T) {
	db, closeDB, err := openDB(filepath.Join(t.TempDir(), "heatmap.db"))
	require.NoError(t, err)
	defer closeDB()

	require.NoError(t, initDB(db))
	require.NoError(t, initDB(db))
}

func TestExportSQLite_StampsCreatedAt(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "heatmap.db")

	var g Grid
	g[3][4] = 2
	require.NoError(t, exportSQLite(dbPath, "runtimes.data", &g))

	db, closeDB, err := openDB(dbPath)
	require.NoError(t, err)
	defer closeDB()

	var createdAt string
	require.NoError(t, db.QueryRow(`SELECT created_at FROM heatmap WHERE source = ?`, "runtimes.data").Scan(&createdAt))
	assert.NotEmpty(t, createdAt)
}
