package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/thurmanmarka/suntrack"
	"github.com/thurmanmarka/suntrack/internal/reference"
	"github.com/thurmanmarka/suntrack/internal/timeutil"
)

// refDay is one day of reference sunrise/sunset, in local time.
type refDay struct {
	date      time.Time
	rise, set time.Time
}

type errStats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *errStats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
	s.sum += v
	s.count++
}

func (s *errStats) avg() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// summary accumulates the error between suntrack and a reference.
type summary struct {
	rows, skipped         int
	rise, set             errStats // absolute, minutes
	riseSigned, setSigned errStats // ours - ref, minutes
}

func signedMinutes(a, b time.Time) float64 {
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	return a.Sub(b).Minutes()
}

// readReferenceCSV reads rows of date,rise,set with rise and set as local
// HH:MM[:SS] in loc. A leading header row is skipped. Malformed rows are
// logged and counted in skipped.
//
//	date,rise,set
//	2025-01-01,07:32,17:12
func readReferenceCSV(r io.Reader, loc *time.Location, logger *slog.Logger) (days []refDay, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, errors.New("empty CSV file")
	}

	start := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		start = 1
	}
	for i := start; i < len(records); i++ {
		row := records[i]
		if len(row) < 3 {
			logger.Warn("skipping row", "row", i+1, "reason", "expected date,rise,set", "columns", len(row))
			skipped++
			continue
		}
		date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(row[0]), loc)
		if err != nil {
			logger.Warn("skipping row", "row", i+1, "error", err)
			skipped++
			continue
		}
		rise, err := parseLocalTime(date, strings.TrimSpace(row[1]))
		if err != nil {
			logger.Warn("skipping row", "row", i+1, "field", "rise", "error", err)
			skipped++
			continue
		}
		set, err := parseLocalTime(date, strings.TrimSpace(row[2]))
		if err != nil {
			logger.Warn("skipping row", "row", i+1, "field", "set", "error", err)
			skipped++
			continue
		}
		days = append(days, refDay{date: date, rise: rise, set: set})
	}
	return days, skipped, nil
}

// parseLocalTime combines an HH:MM or HH:MM:SS clock time with date.
func parseLocalTime(date time.Time, hhmm string) (time.Time, error) {
	layout := "15:04"
	if strings.Count(hhmm, ":") == 2 {
		layout = "15:04:05"
	}
	parsed, err := time.Parse(layout, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0, date.Location()), nil
}

// sunriseReference builds reference days from go-sunrise over [from, to].
// Days on which go-sunrise reports no event are left out.
func sunriseReference(coords suntrack.Coordinates, from, to time.Time) []refDay {
	var days []refDay
	for d := timeutil.StartOfDay(from); !d.After(to); d = timeutil.AddDays(d, 1) {
		rise, set, ok := reference.SunriseSunset(coords.Lat, coords.Lon, d)
		if !ok {
			continue
		}
		days = append(days, refDay{date: d, rise: rise, set: set})
	}
	return days
}

// rowSink receives the signed per-day errors, in minutes.
type rowSink func(date time.Time, riseSigned, setSigned float64) error

// rowWriter writes one CSV row of errors per compared day.
type rowWriter struct {
	w *csv.Writer
}

func newRowWriter(out io.Writer) (*rowWriter, error) {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"date", "rise_err", "set_err", "rise_signed", "set_signed"}); err != nil {
		return nil, err
	}
	return &rowWriter{w: w}, nil
}

// sink returns nil for a nil rowWriter so compare skips per-row output.
func (r *rowWriter) sink() rowSink {
	if r == nil {
		return nil
	}
	return func(date time.Time, rise, set float64) error {
		return r.w.Write([]string{
			date.Format("2006-01-02"),
			fmt.Sprintf("%.6f", math.Abs(rise)),
			fmt.Sprintf("%.6f", math.Abs(set)),
			fmt.Sprintf("%.6f", rise),
			fmt.Sprintf("%.6f", set),
		})
	}
}

// flush writes out buffered rows and reports any write error.
func (r *rowWriter) flush() error {
	if r == nil {
		return nil
	}
	r.w.Flush()
	return r.w.Error()
}

// compare evaluates suntrack for each reference day and accumulates errors.
func compare(coords suntrack.Coordinates, refs []refDay, logger *slog.Logger, sink rowSink) (summary, error) {
	var sum summary
	for _, ref := range refs {
		day, err := suntrack.ComputeSolarDay(coords, ref.date)
		if errors.Is(err, suntrack.ErrNoSolarEvent) {
			logger.Debug("no solar event", "date", ref.date.Format("2006-01-02"), "condition", day.Condition)
			sum.skipped++
			continue
		}
		if err != nil {
			return sum, err
		}
		sum.rows++

		riseSigned := signedMinutes(day.SunriseTime(), ref.rise)
		setSigned := signedMinutes(day.SunsetTime(), ref.set)
		sum.rise.add(math.Abs(riseSigned))
		sum.set.add(math.Abs(setSigned))
		sum.riseSigned.add(riseSigned)
		sum.setSigned.add(setSigned)

		logger.Debug("day compared",
			"date", ref.date.Format("2006-01-02"),
			"rise", day.SunriseTime().Format("15:04"), "refRise", ref.rise.Format("15:04"),
			"set", day.SunsetTime().Format("15:04"), "refSet", ref.set.Format("15:04"),
			"riseErr", riseSigned, "setErr", setSigned)

		if sink != nil {
			if err := sink(ref.date, riseSigned, setSigned); err != nil {
				return sum, err
			}
		}
	}
	return sum, nil
}

func (s summary) print(w io.Writer, source string, coords suntrack.Coordinates, loc *time.Location) {
	fmt.Fprintln(w, "=== suntrack profiler summary ===")
	fmt.Fprintf(w, "Reference: %s\n", source)
	fmt.Fprintf(w, "Lat/Lon:   %.4f / %.4f\n", coords.Lat, coords.Lon)
	fmt.Fprintf(w, "TZ:        %s\n", loc)
	fmt.Fprintf(w, "Rows:      %d (processed), %d skipped\n", s.rows, s.skipped)

	if s.rise.count == 0 {
		fmt.Fprintln(w, "No valid rows to compute stats.")
		return
	}
	block := func(title string, st errStats) {
		fmt.Fprintf(w, "\n%s:\n", title)
		fmt.Fprintf(w, "  count: %d\n", st.count)
		fmt.Fprintf(w, "  min:   %.3f\n", st.min)
		fmt.Fprintf(w, "  max:   %.3f\n", st.max)
		fmt.Fprintf(w, "  avg:   %.3f\n", st.avg())
	}
	block("Rise error (minutes)", s.rise)
	block("Set error (minutes)", s.set)
	block("Rise signed error (minutes, ours - ref)", s.riseSigned)
	block("Set signed error (minutes, ours - ref)", s.setSigned)
}
