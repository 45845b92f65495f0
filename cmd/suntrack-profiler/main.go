// Command suntrack-profiler measures how far suntrack's sunrise and sunset
// drift from a reference: either a CSV of published times or go-sunrise.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/thurmanmarka/suntrack"
)

func main() {
	var (
		lat     = flag.Float64("lat", 0, "latitude in degrees (north positive)")
		lon     = flag.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
		tzName  = flag.String("tz", "UTC", "IANA time zone name (e.g. America/Phoenix)")
		refCSV  = flag.String("refcsv", "", "reference CSV (date,rise,set); empty compares against go-sunrise")
		year    = flag.Int("year", time.Now().Year(), "year to compare against go-sunrise when -refcsv is empty")
		verbose = flag.Bool("verbose", false, "log per-day errors instead of only the summary")
		outCSV  = flag.String("outcsv", "", "optional path to write per-row error CSV")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, *lat, *lon, *tzName, *refCSV, *year, *outCSV); err != nil {
		logger.Error("profiler failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, lat, lon float64, tzName, refCSV string, year int, outCSV string) error {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", tzName, err)
	}
	coords := suntrack.Coordinates{Lat: lat, Lon: lon}
	if err := coords.Validate(); err != nil {
		return err
	}
	if lat == 0 && lon == 0 {
		logger.Warn("lat=0 lon=0 (Gulf of Guinea); did you mean to set -lat/-lon?")
	}

	var (
		refs    []refDay
		skipped int
		source  string
	)
	if refCSV != "" {
		f, err := os.Open(refCSV)
		if err != nil {
			return fmt.Errorf("failed to open refcsv %q: %w", refCSV, err)
		}
		refs, skipped, err = readReferenceCSV(f, loc, logger)
		f.Close()
		if err != nil {
			return err
		}
		source = refCSV
	} else {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		to := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
		refs = sunriseReference(coords, from, to)
		source = fmt.Sprintf("go-sunrise %d", year)
	}

	var rows *rowWriter
	if outCSV != "" {
		f, err := os.Create(outCSV)
		if err != nil {
			return fmt.Errorf("failed to create outcsv %q: %w", outCSV, err)
		}
		defer f.Close()
		if rows, err = newRowWriter(f); err != nil {
			return fmt.Errorf("failed to write outcsv header: %w", err)
		}
	}

	sum, err := compare(coords, refs, logger, rows.sink())
	if err != nil {
		return err
	}
	if err := rows.flush(); err != nil {
		return fmt.Errorf("failed to write outcsv %q: %w", outCSV, err)
	}
	sum.skipped += skipped
	sum.print(os.Stdout, source, coords, loc)
	return nil
}
