// Package export writes solar series and derived values in the formats the
// command line tools offer: a text table, JSON, YAML, CSV and Parquet.
// Output files ending in .gz or .zst are compressed.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/suntrack"
	"github.com/thurmanmarka/suntrack/internal/timeutil"
)

// Format is an output format name.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatJSON, FormatYAML, FormatCSV, FormatParquet:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (use text, json, yaml, csv or parquet)", name)
}

// Row is the flat form of a SolarDay. Hour fields are nil on days without
// events since JSON cannot carry NaN.
type Row struct {
	Date      string   `json:"date" yaml:"date" parquet:"date"`
	Unix      int64    `json:"unix" yaml:"unix" parquet:"unix"`
	Offset    int      `json:"utcOffsetMinutes" yaml:"utcOffsetMinutes" parquet:"utc_offset_minutes"`
	Sunrise   *float64 `json:"sunrise" yaml:"sunrise" parquet:"sunrise,optional"`
	SolarNoon *float64 `json:"solarNoon" yaml:"solarNoon" parquet:"solar_noon,optional"`
	Sunset    *float64 `json:"sunset" yaml:"sunset" parquet:"sunset,optional"`
	DayLength *float64 `json:"dayLength" yaml:"dayLength" parquet:"day_length,optional"`
	Condition string   `json:"condition" yaml:"condition" parquet:"condition"`
}

// NewRow flattens d.
func NewRow(d suntrack.SolarDay) Row {
	_, offset := d.Date.Zone()
	return Row{
		Date:      d.Date.Format("2006-01-02"),
		Unix:      d.Date.Unix(),
		Offset:    offset / 60,
		Sunrise:   hours(d.Sunrise),
		SolarNoon: hours(d.SolarNoon),
		Sunset:    hours(d.Sunset),
		DayLength: hours(d.DayLength),
		Condition: d.Condition.String(),
	}
}

// Rows flattens every day of s.
func Rows(s *suntrack.Series) []Row {
	days := s.Days()
	rows := make([]Row, len(days))
	for i, d := range days {
		rows[i] = NewRow(d)
	}
	return rows
}

func hours(h float64) *float64 {
	if math.IsNaN(h) {
		return nil
	}
	return &h
}

// WriteSeries writes s to w in format f.
func WriteSeries(w io.Writer, f Format, s *suntrack.Series) error {
	rows := Rows(s)
	switch f {
	case FormatText:
		return writeText(w, rows)
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatParquet:
		if err := parquet.Write(w, rows); err != nil {
			return fmt.Errorf("write parquet: %w", err)
		}
		return nil
	case FormatJSON, FormatYAML:
		return Encode(w, f, rows)
	}
	return fmt.Errorf("unsupported series format %q", f)
}

// Encode writes v as JSON or YAML.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("format %q cannot encode structured values", f)
}

func writeText(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSUNRISE\tSOLAR NOON\tSUNSET\tDAY LENGTH\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", r.Date,
			clock(r.Sunrise), clock(r.SolarNoon), clock(r.Sunset), duration(r.DayLength, r.Condition))
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "sunrise", "solar_noon", "sunset", "day_length", "condition"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{r.Date, number(r.Sunrise), number(r.SolarNoon), number(r.Sunset), number(r.DayLength), r.Condition}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func clock(h *float64) string {
	if h == nil {
		return timeutil.FormatClock(math.NaN())
	}
	return timeutil.FormatClock(*h)
}

func duration(h *float64, condition string) string {
	if h == nil {
		return condition
	}
	return timeutil.FormatDuration(*h)
}

func number(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', 6, 64)
}

// Create opens path for writing; "" and "-" mean stdout. Paths ending in
// .gz are gzip compressed and .zst zstd compressed.
func Create(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz := pgzip.NewWriter(f)
		return &stacked{Writer: gz, comp: gz, file: f}, nil
	case strings.HasSuffix(path, ".zst"):
		enc, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &stacked{Writer: enc, comp: enc, file: f}, nil
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// stacked closes a compressor and then the file under it.
type stacked struct {
	io.Writer
	comp io.Closer
	file io.Closer
}

func (s *stacked) Close() error {
	err := s.comp.Close()
	if ferr := s.file.Close(); err == nil {
		err = ferr
	}
	return err
}
