package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Cell is one non-empty bucket of the grid.
type Cell struct {
	X, Y  int
	Count int
}

// writeGrid prints one row per X bucket with the Y buckets left to right,
// each count followed by a space.
func writeGrid(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	for x := range gridSize {
		for y := range gridSize {
			bw.WriteString(strconv.Itoa(g[x][y]))
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error in writing grid: %w", err)
	}
	return nil
}

// Cells lists the non-empty buckets in row-major order.
func (g *Grid) Cells() []Cell {
	cells := []Cell{}
	for x := range gridSize {
		for y := range gridSize {
			if g[x][y] != 0 {
				cells = append(cells, Cell{X: x, Y: y, Count: g[x][y]})
			}
		}
	}
	return cells
}

func (g *Grid) Total() int {
	total := 0
	for x := range gridSize {
		for y := range gridSize {
			total += g[x][y]
		}
	}
	return total
}

func (g *Grid) Max() int {
	maxCount := 0
	for x := range gridSize {
		for y := range gridSize {
			maxCount = max(maxCount, g[x][y])
		}
	}
	return maxCount
}
