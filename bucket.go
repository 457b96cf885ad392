package main

import (
	"fmt"
	"math"
	"os"
	"strings"
)

const (
	granularity = 50
	gridSize    = granularity + 1

	// field value marking a missing measurement
	nanField = "NaN"
)

// Grid holds bucket counts, indexed as grid[bx][by].
type Grid [gridSize][gridSize]int

// Params selects the two columns of the input and how they are binned.
type Params struct {
	Path    string
	XCol    int
	YCol    int
	XMul    int
	YMul    int
	LogBase float64
}

// Stats summarises a bucketize run.
type Stats struct {
	Records int // data lines, header excluded
	Counted int
	Skipped int
}

// BucketRangeError reports a record whose bucket falls outside the grid.
// Line is the 0-based position of the record in the file (header included)
// plus one.
type BucketRangeError struct {
	BX, BY int
	Line   int
}

func (e *BucketRangeError) Error() string {
	return fmt.Sprintf("bx is %d by is %d on line %d", e.BX, e.BY, e.Line)
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error in reading input file [%v]: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines, nil
}

// bucketize skips the header line and counts every remaining line into the
// grid. It stops at the first out of range bucket.
func bucketize(lines []string, p Params) (*Grid, Stats, error) {
	var grid Grid
	var stats Stats

	for index, line := range lines {
		if index == 0 {
			continue
		}
		stats.Records++

		fields := strings.FieldsFunc(line, isFieldSeparator)
		xField, yField := field(fields, p.XCol), field(fields, p.YCol)
		if xField == nanField || yField == nanField {
			clog.Debugf("skipping line [%v]: missing value", index+1)
			stats.Skipped++
			continue
		}

		bx := bucketIndex(parseFloatOrZero(xField)*float64(p.XMul), p.LogBase)
		by := bucketIndex(parseFloatOrZero(yField)*float64(p.YMul), p.LogBase)
		if !inGrid(bx) || !inGrid(by) {
			return nil, stats, &BucketRangeError{BX: bx, BY: by, Line: index + 1}
		}

		grid[bx][by]++
		stats.Counted++
	}

	return &grid, stats, nil
}

// bucketIndex maps v onto a logarithmic scale where logBase is worth
// granularity buckets. Values below 1 land in bucket 0. Non-finite results
// saturate so they always fail the grid check.
func bucketIndex(v, logBase float64) int {
	if v < 1 {
		return 0
	}

	b := math.Round(granularity * (math.Log(v+0.1) / math.Log(logBase)))
	switch {
	case math.IsNaN(b) || b >= math.MaxInt64:
		return math.MaxInt
	case b <= math.MinInt64:
		return math.MinInt
	}
	return int(b)
}

// field returns fields[i], counting from the end for negative i, and "" when
// i is out of range.
func field(fields []string, i int) string {
	if i < 0 {
		i += len(fields)
	}
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

// isFieldSeparator matches ASCII whitespace only, a non-breaking space is
// part of a field.
func isFieldSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func inGrid(b int) bool {
	return b >= 0 && b <= granularity
}
