package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2

	usageLine = "usage: heatmapify [flags] <file> <xcol> <ycol> <xmul> <ymul> <logbase>"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("heatmapify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	var opts exportOptions
	fs.StringVar(&opts.PNGPath, "png", "", "write a PNG rendering of the heatmap")
	fs.IntVar(&opts.CellSize, "cell", defaultCellSize, "PNG pixels per bucket")
	fs.StringVar(&opts.HTMLPath, "html", "", "write an HTML page of the heatmap")
	fs.StringVar(&opts.SnapshotPath, "snapshot", "", "screenshot the HTML heatmap to a PNG in a headless browser")
	fs.StringVar(&opts.DBPath, "db", "", "store the heatmap cells in a sqlite database")
	fs.StringVar(&opts.PGURL, "pg", "", "store the heatmap cells in postgres")
	logLevel := fs.String("loglevel", "WARNING", "DEBUG, INFO, WARNING or ERROR")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	setupLogging(*logLevel, stderr)

	if fs.NArg() < 6 {
		fs.Usage()
		return exitUsage
	}
	if fs.NArg() > 6 {
		clog.Warnf("ignoring arguments after the log base %v, flags must come before the file", fs.Args()[6:])
	}
	p := Params{
		Path:    fs.Arg(0),
		XCol:    parseIntOrZero(fs.Arg(1)),
		YCol:    parseIntOrZero(fs.Arg(2)),
		XMul:    parseIntOrZero(fs.Arg(3)),
		YMul:    parseIntOrZero(fs.Arg(4)),
		LogBase: parseFloatOrZero(fs.Arg(5)),
	}

	if err := heatmapify(p, opts, stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFatal
	}
	return exitOK
}

func heatmapify(p Params, opts exportOptions, stdout io.Writer) error {
	clog.Infof("---- bucketing [%v] columns [%v, %v] ----", p.Path, p.XCol, p.YCol)
	defer clog.Info("---- heatmap done ----")

	lines, err := readLines(p.Path)
	if err != nil {
		return err
	}

	grid, stats, err := bucketize(lines, p)
	if err != nil {
		return err
	}
	clog.Infof("counted [%v] of [%v] records, skipped [%v]", stats.Counted, stats.Records, stats.Skipped)

	if err := writeGrid(stdout, grid); err != nil {
		return err
	}

	if !opts.enabled() {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runExports(ctx, opts, filepath.Base(p.Path), grid)
}
