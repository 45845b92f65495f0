package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"cloudeng.io/logging/ctxlog"

	"github.com/thurmanmarka/suntrack"
	"github.com/thurmanmarka/suntrack/internal/config"
	"github.com/thurmanmarka/suntrack/internal/export"
	"github.com/thurmanmarka/suntrack/internal/reference"
	"github.com/thurmanmarka/suntrack/internal/timeutil"
)

type command struct {
	flags func(fs *flag.FlagSet, o *options)
	run   func(ctx context.Context, env *environment) error
}

var commands = map[string]command{
	"day":    {flags: dayFlags, run: runDay},
	"series": {run: runSeries},
	"stats":  {flags: statsFlags, run: runStats},
	"events": {flags: eventsFlags, run: runEvents},
	"locate": {flags: locateFlags, run: runLocate},
}

// options holds the parsed flags; set records which were given explicitly
// so they can override the configuration.
type options struct {
	configPath string
	lat, lon   float64
	tz         string
	from, to   string
	format     string
	out        string

	date      string
	column    string
	reference bool
	at        string

	set map[string]bool
}

// environment is everything a subcommand needs, resolved from config and flags.
type environment struct {
	opts   options
	cfg    *config.Config
	coords suntrack.Coordinates
	tz     *time.Location
	format export.Format
	logger *slog.Logger
	stdout io.Writer
}

func setup(name string, args []string, extra func(*flag.FlagSet, *options)) (*environment, error) {
	var o options
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.Float64Var(&o.lat, "lat", 0, "latitude in degrees (north positive)")
	fs.Float64Var(&o.lon, "lon", 0, "longitude in degrees (east positive, west negative)")
	fs.StringVar(&o.tz, "tz", "", "IANA time zone name (e.g. America/New_York)")
	fs.StringVar(&o.from, "from", "", "first day, YYYY-MM-DD")
	fs.StringVar(&o.to, "to", "", "last day, YYYY-MM-DD")
	fs.StringVar(&o.format, "format", "", "output format")
	fs.StringVar(&o.out, "out", "", "output path (default stdout)")
	if extra != nil {
		extra(fs, &o)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	return newEnvironment(cfg, o)
}

func newEnvironment(cfg *config.Config, o options) (*environment, error) {
	if o.set["lat"] {
		cfg.Location.Lat = o.lat
	}
	if o.set["lon"] {
		cfg.Location.Lon = o.lon
	}
	if o.set["tz"] {
		cfg.Location.TimeZone = o.tz
	}
	if o.set["format"] {
		cfg.Output.Format = o.format
	}
	if o.set["out"] {
		cfg.Output.Path = o.out
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tz, err := cfg.TimeLocation()
	if err != nil {
		return nil, err
	}
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return &environment{
		opts:   o,
		cfg:    cfg,
		coords: cfg.Coordinates(),
		tz:     tz,
		format: format,
		logger: cfg.NewLogger(os.Stderr),
		stdout: os.Stdout,
	}, nil
}

func (e *environment) context(ctx context.Context) context.Context {
	ctx = ctxlog.WithLogger(ctx, e.logger)
	return ctxlog.WithAttributes(ctx, "lat", e.coords.Lat, "lon", e.coords.Lon)
}

// parseDay parses YYYY-MM-DD as local midnight in tz.
func parseDay(s string, tz *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// parseInstant accepts RFC3339 or a local date/time in tz.
func parseInstant(s string, tz *time.Location) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, tz); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse time %q", s)
}

// dayRange resolves -from/-to, defaulting to window.days either side of now.
func (e *environment) dayRange(now time.Time) (start, end time.Time, err error) {
	today := timeutil.StartOfDay(now.In(e.tz))
	start = timeutil.AddDays(today, -e.cfg.Window.Days)
	end = timeutil.AddDays(today, e.cfg.Window.Days)
	if e.opts.from != "" {
		if start, err = parseDay(e.opts.from, e.tz); err != nil {
			return
		}
	}
	if e.opts.to != "" {
		if end, err = parseDay(e.opts.to, e.tz); err != nil {
			return
		}
	}
	return start, end, nil
}

func (e *environment) series(ctx context.Context) (*suntrack.Series, error) {
	start, end, err := e.dayRange(time.Now())
	if err != nil {
		return nil, err
	}
	s, err := suntrack.BuildSeries(e.coords, start, end)
	if err != nil {
		return nil, err
	}
	ctxlog.Logger(e.context(ctx)).Debug("series built",
		"from", start.Format("2006-01-02"), "to", end.Format("2006-01-02"), "days", s.Len())
	return s, nil
}

// output opens the configured destination.
func (e *environment) output() (io.WriteCloser, error) {
	if e.cfg.Output.Path == "" {
		return nopCloser{e.stdout}, nil
	}
	return export.Create(e.cfg.Output.Path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func withOutput(e *environment, fn func(w io.Writer) error) error {
	w, err := e.output()
	if err != nil {
		return err
	}
	if err := fn(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// ---------------------
// day
// ---------------------

func dayFlags(fs *flag.FlagSet, o *options) {
	fs.StringVar(&o.date, "date", "", "date in YYYY-MM-DD (optional, defaults to today)")
}

func runDay(ctx context.Context, e *environment) error {
	date := timeutil.StartOfDay(time.Now().In(e.tz))
	if e.opts.date != "" {
		var err error
		if date, err = parseDay(e.opts.date, e.tz); err != nil {
			return err
		}
	}
	day, err := suntrack.ComputeSolarDay(e.coords, date)
	if err != nil && !errors.Is(err, suntrack.ErrNoSolarEvent) {
		return err
	}
	return withOutput(e, func(w io.Writer) error {
		if e.format == export.FormatText {
			printDay(w, e.coords, day)
			return nil
		}
		return export.Encode(w, e.format, export.NewRow(day))
	})
}

func printDay(w io.Writer, coords suntrack.Coordinates, day suntrack.SolarDay) {
	fmt.Fprintf(w, "Sun for %s\n", coords)
	fmt.Fprintf(w, "Date: %s (%s)\n\n", day.Date.Format("2006-01-02"), day.Date.Location())
	if !day.HasEvents() {
		fmt.Fprintf(w, "No sunrise or sunset: %s\n", day.Condition)
		return
	}
	fmt.Fprintf(w, "Sunrise:    %s\n", day.SunriseTime().Format(time.RFC3339))
	fmt.Fprintf(w, "Solar noon: %s\n", day.SolarNoonTime().Format(time.RFC3339))
	fmt.Fprintf(w, "Sunset:     %s\n", day.SunsetTime().Format(time.RFC3339))
	fmt.Fprintf(w, "Day length: %s\n", timeutil.FormatDuration(day.DayLength))
}

// ---------------------
// series
// ---------------------

func runSeries(ctx context.Context, e *environment) error {
	s, err := e.series(ctx)
	if err != nil {
		return err
	}
	return withOutput(e, func(w io.Writer) error {
		return export.WriteSeries(w, e.format, s)
	})
}

// ---------------------
// stats
// ---------------------

func statsFlags(fs *flag.FlagSet, o *options) {
	fs.StringVar(&o.column, "column", "", "sunrise, solarNoon, sunset or dayLength (default all)")
}

func runStats(ctx context.Context, e *environment) error {
	columns := suntrack.Columns
	if e.opts.column != "" {
		col, err := suntrack.ParseColumn(e.opts.column)
		if err != nil {
			return err
		}
		columns = []suntrack.Column{col}
	}
	s, err := e.series(ctx)
	if err != nil {
		return err
	}
	docs := make([]export.StatsDoc, 0, len(columns))
	for _, col := range columns {
		st, err := suntrack.Aggregate(s, col)
		if err != nil {
			return err
		}
		docs = append(docs, export.NewStatsDoc(st))
	}
	return withOutput(e, func(w io.Writer) error {
		if e.format == export.FormatText {
			for _, d := range docs {
				fmt.Fprintf(w, "%-10s min %s  max %s  avg %s  (%d days)\n", d.Column,
					hoursText(d.Column, d.Min), hoursText(d.Column, d.Max), hoursText(d.Column, d.Avg), d.Count)
			}
			return nil
		}
		return export.Encode(w, e.format, docs)
	})
}

func hoursText(column string, h float64) string {
	if column == string(suntrack.ColumnDayLength) {
		return timeutil.FormatDuration(h)
	}
	return timeutil.FormatClock(h)
}

// ---------------------
// events
// ---------------------

func eventsFlags(fs *flag.FlagSet, o *options) {
	fs.BoolVar(&o.reference, "reference", false, "include astronomical solstice/equinox instants")
}

func runEvents(ctx context.Context, e *environment) error {
	s, err := e.series(ctx)
	if err != nil {
		return err
	}
	ev := suntrack.DetectEvents(s)

	var markers []reference.Marker
	if e.opts.reference {
		from, to := s.Range()
		markers = reference.Between(from, timeutil.AddDays(to, 1))
	}
	doc := export.NewEventsDoc(ev, markers)
	return withOutput(e, func(w io.Writer) error {
		if e.format == export.FormatText {
			printEvents(w, doc, e.tz)
			return nil
		}
		return export.Encode(w, e.format, doc)
	})
}

func printEvents(w io.Writer, doc export.EventsDoc, tz *time.Location) {
	orNone := func(s string) string {
		if s == "" {
			return "none"
		}
		return s
	}
	fmt.Fprintf(w, "Longest day:   %s\n", orNone(doc.SummerSolstice))
	fmt.Fprintf(w, "Shortest day:  %s\n", orNone(doc.WinterSolstice))
	fmt.Fprintf(w, "12h days:      %v\n", doc.Equinoxes)
	fmt.Fprintf(w, "12h crossings: %v\n", doc.Crossings)
	for _, m := range doc.Reference {
		fmt.Fprintf(w, "%-18s %s\n", m.Name+":", m.Time.In(tz).Format(time.RFC3339))
	}
}

// ---------------------
// locate
// ---------------------

func locateFlags(fs *flag.FlagSet, o *options) {
	fs.StringVar(&o.at, "at", "", "timestamp, RFC3339 or YYYY-MM-DD[ HH:MM] (default now)")
}

func runLocate(ctx context.Context, e *environment) error {
	ctx = e.context(ctx)
	at := time.Now().In(e.tz)
	if e.opts.at != "" {
		var err error
		if at, err = parseInstant(e.opts.at, e.tz); err != nil {
			return err
		}
	}
	start, end, err := e.dayRange(at)
	if err != nil {
		return err
	}
	tr, err := suntrack.NewTracker(e.coords)
	if err != nil {
		return err
	}
	if _, err := tr.Recompute(ctx, start, end); err != nil {
		return err
	}
	day, err := tr.At(at)
	if err != nil {
		return err
	}
	return withOutput(e, func(w io.Writer) error {
		if e.format == export.FormatText {
			printDay(w, e.coords, day)
			return nil
		}
		return export.Encode(w, e.format, export.NewRow(day))
	})
}
