package suntrack_test

import (
	"errors"
	"testing"
	"time"

	"github.com/thurmanmarka/suntrack"
)

func TestAggregate_Bounds(t *testing.T) {
	ny := loadLocation(t, "America/New_York")
	s := buildYear(t, raleigh, ny)

	for _, col := range suntrack.Columns {
		stats, err := suntrack.Aggregate(s, col)
		if err != nil {
			t.Fatalf("Aggregate(%s) error = %v", col, err)
		}
		if stats.Count != s.Len() {
			t.Errorf("%s: Count = %d, want %d", col, stats.Count, s.Len())
		}
		if !(stats.Min <= stats.Avg && stats.Avg <= stats.Max) {
			t.Errorf("%s: expected min <= avg <= max, got %+v", col, stats)
		}
		t.Logf("%s: min %.3f max %.3f avg %.3f", col, stats.Min, stats.Max, stats.Avg)
	}

	stats, _ := suntrack.Aggregate(s, suntrack.ColumnSunrise)
	for _, d := range s.Days() {
		if d.Sunrise < stats.Min || d.Sunrise > stats.Max {
			t.Fatalf("%s: sunrise %.3f outside [%.3f, %.3f]", d.Date.Format("2006-01-02"), d.Sunrise, stats.Min, stats.Max)
		}
	}

	dl, _ := suntrack.Aggregate(s, suntrack.ColumnDayLength)
	if dl.Max < 14.4 || dl.Max > 14.8 || dl.Min < 9.5 || dl.Min > 9.9 {
		t.Errorf("unexpected day length range %+v", dl)
	}
}

func TestAggregate_SkipsPolarDays(t *testing.T) {
	arctic := suntrack.Coordinates{Lat: 70, Lon: 25}
	s, err := suntrack.BuildSeries(arctic,
		time.Date(2021, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.June, 30, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildSeries() error = %v", err)
	}
	stats, err := suntrack.Aggregate(s, suntrack.ColumnDayLength)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if stats.Count == 0 || stats.Count >= s.Len() {
		t.Errorf("expected some but not all days counted, got %d of %d", stats.Count, s.Len())
	}
	if stats.Max > 24 {
		t.Errorf("Max = %v, polar sentinels leaked into the aggregate", stats.Max)
	}
}

func TestAggregate_Errors(t *testing.T) {
	ny := loadLocation(t, "America/New_York")
	s := buildYear(t, raleigh, ny)

	if _, err := suntrack.Aggregate(s, suntrack.Column("moonrise")); !errors.Is(err, suntrack.ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
	if _, err := suntrack.Aggregate(nil, suntrack.ColumnSunrise); !errors.Is(err, suntrack.ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries for nil series, got %v", err)
	}

	polar, err := suntrack.BuildSeries(suntrack.Coordinates{Lat: 85},
		time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.June, 25, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := suntrack.Aggregate(polar, suntrack.ColumnSunset); !errors.Is(err, suntrack.ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries for all-polar series, got %v", err)
	}
}

func TestParseColumn(t *testing.T) {
	for name, want := range map[string]suntrack.Column{
		"sunrise":   suntrack.ColumnSunrise,
		"SUNSET":    suntrack.ColumnSunset,
		"daylength": suntrack.ColumnDayLength,
		"solarNoon": suntrack.ColumnSolarNoon,
	} {
		got, err := suntrack.ParseColumn(name)
		if err != nil || got != want {
			t.Errorf("ParseColumn(%q) = %q, %v; want %q", name, got, err, want)
		}
	}
	if _, err := suntrack.ParseColumn("noon"); !errors.Is(err, suntrack.ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
}
