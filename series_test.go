package suntrack_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/thurmanmarka/suntrack"
)

func buildYear(t *testing.T, loc suntrack.Coordinates, tz *time.Location) *suntrack.Series {
	t.Helper()
	s, err := suntrack.BuildSeries(loc,
		time.Date(2021, time.January, 1, 0, 0, 0, 0, tz),
		time.Date(2021, time.December, 31, 0, 0, 0, 0, tz))
	if err != nil {
		t.Fatalf("BuildSeries() error = %v", err)
	}
	return s
}

func TestBuildSeries_OneRecordPerDay(t *testing.T) {
	ny := loadLocation(t, "America/New_York")
	s := buildYear(t, raleigh, ny)

	if got, want := s.Len(), 365; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if s.Location() != raleigh {
		t.Errorf("Location() = %v", s.Location())
	}
	for i := 0; i < s.Len(); i++ {
		d := s.At(i)
		if d.Date.YearDay() != i+1 {
			t.Fatalf("record %d has day of year %d", i, d.Date.YearDay())
		}
		if d.Date.Hour() != 0 || d.Date.Minute() != 0 {
			t.Fatalf("record %d is not at local midnight: %v", i, d.Date)
		}
		if i > 0 {
			prev := s.At(i - 1)
			if !d.Date.After(prev.Date) {
				t.Fatalf("dates not increasing at %d", i)
			}
			if jump := math.Abs(d.DayLength - prev.DayLength); jump > 1 {
				t.Fatalf("day length jumps %.3f h at %s", jump, d.Date.Format("2006-01-02"))
			}
		}
	}
}

func TestBuildSeries_PartialDaysAreWidened(t *testing.T) {
	ny := loadLocation(t, "America/New_York")
	start := time.Date(2021, time.November, 6, 15, 30, 0, 0, ny)
	end := time.Date(2021, time.November, 8, 9, 0, 0, 0, ny)

	s, err := suntrack.BuildSeries(raleigh, start, end)
	if err != nil {
		t.Fatalf("BuildSeries() error = %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	// Crosses the end of DST; every record stays on its own calendar day.
	for i, wantDay := range []int{6, 7, 8} {
		if got := s.At(i).Date.Day(); got != wantDay {
			t.Errorf("record %d on day %d, want %d", i, got, wantDay)
		}
	}
	first, last := s.Range()
	if last.Sub(first) != 49*time.Hour {
		t.Errorf("span = %v, want 49h across the fall-back", last.Sub(first))
	}
}

func TestBuildSeries_InvalidRange(t *testing.T) {
	now := time.Now()
	_, err := suntrack.BuildSeries(raleigh, now, now.Add(-time.Minute))
	if !errors.Is(err, suntrack.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	_, err = suntrack.BuildSeries(suntrack.Coordinates{Lat: 100}, now, now)
	if !errors.Is(err, suntrack.ErrInvalidLocation) {
		t.Fatalf("expected ErrInvalidLocation, got %v", err)
	}
}

func TestBuildSeries_SingleDayMatchesComputeSolarDay(t *testing.T) {
	ny := loadLocation(t, "America/New_York")
	d := time.Date(2021, time.April, 10, 0, 0, 0, 0, ny)

	s, err := suntrack.BuildSeries(raleigh, d, d)
	if err != nil {
		t.Fatalf("BuildSeries() error = %v", err)
	}
	want, err := suntrack.ComputeSolarDay(raleigh, d)
	if err != nil {
		t.Fatalf("ComputeSolarDay() error = %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	got := s.First()
	if !got.Date.Equal(want.Date) || got.Sunrise != want.Sunrise || got.Sunset != want.Sunset ||
		got.SolarNoon != want.SolarNoon || got.DayLength != want.DayLength {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestBuildSeries_Idempotent(t *testing.T) {
	ny := loadLocation(t, "America/New_York")
	a := buildYear(t, raleigh, ny).Days()
	b := buildYear(t, raleigh, ny).Days()

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) ||
			math.Float64bits(a[i].Sunrise) != math.Float64bits(b[i].Sunrise) ||
			math.Float64bits(a[i].Sunset) != math.Float64bits(b[i].Sunset) ||
			math.Float64bits(a[i].DayLength) != math.Float64bits(b[i].DayLength) {
			t.Fatalf("record %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBuildSeries_PolarSentinels(t *testing.T) {
	arctic := suntrack.Coordinates{Lat: 80, Lon: 0}
	s, err := suntrack.BuildSeries(arctic,
		time.Date(2021, time.June, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.July, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildSeries() error = %v", err)
	}
	polar := 0
	for _, d := range s.Days() {
		if d.Condition == suntrack.PolarDay {
			polar++
			if !math.IsNaN(d.DayLength) {
				t.Errorf("%s: expected NaN day length, got %v", d.Date.Format("2006-01-02"), d.DayLength)
			}
		}
	}
	if polar == 0 {
		t.Fatal("expected at least one polar day around the June solstice at 80N")
	}
	t.Logf("%d of %d days are polar day", polar, s.Len())
}

func TestSeries_DaysIsACopy(t *testing.T) {
	s, err := suntrack.BuildSeries(raleigh, time.Now(), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	days := s.Days()
	days[0].Sunrise = -100
	if s.First().Sunrise == -100 {
		t.Error("Days() exposed the series storage")
	}
}

func TestBuildSeries_MidnightDSTGap(t *testing.T) {
	// Brazil moved clocks from 00:00 to 01:00 on 2018-11-04, so that day
	// has no local midnight.
	sp := loadLocation(t, "America/Sao_Paulo")
	saoPaulo := suntrack.Coordinates{Lat: -23.55, Lon: -46.63}

	tests := []struct {
		name       string
		start, end time.Time
		wantDays   []int
	}{
		{
			name:     "spanning the gap",
			start:    time.Date(2018, time.November, 2, 0, 0, 0, 0, sp),
			end:      time.Date(2018, time.November, 6, 0, 0, 0, 0, sp),
			wantDays: []int{2, 3, 4, 5, 6},
		},
		{
			name:     "starting on the gap day",
			start:    time.Date(2018, time.November, 4, 12, 0, 0, 0, sp),
			end:      time.Date(2018, time.November, 7, 12, 0, 0, 0, sp),
			wantDays: []int{4, 5, 6, 7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := suntrack.BuildSeries(saoPaulo, tt.start, tt.end)
			if err != nil {
				t.Fatalf("BuildSeries() error = %v", err)
			}
			if s.Len() != len(tt.wantDays) {
				t.Fatalf("Len() = %d, want %d", s.Len(), len(tt.wantDays))
			}
			seen := map[int]int{}
			for i, want := range tt.wantDays {
				d := s.At(i).Date
				seen[d.YearDay()]++
				if d.Day() != want || d.Month() != time.November {
					t.Errorf("record %d is %v, want November %d", i, d, want)
				}
				if i > 0 && d.YearDay() != s.At(i-1).Date.YearDay()+1 {
					t.Errorf("record %d: day of year %d follows %d", i, d.YearDay(), s.At(i-1).Date.YearDay())
				}
			}
			for doy, n := range seen {
				if n != 1 {
					t.Errorf("day of year %d appears %d times", doy, n)
				}
			}
		})
	}

	s, err := suntrack.BuildSeries(saoPaulo,
		time.Date(2018, time.November, 4, 0, 0, 0, 0, sp),
		time.Date(2018, time.November, 4, 0, 0, 0, 0, sp))
	if err != nil {
		t.Fatalf("BuildSeries() error = %v", err)
	}
	gap := s.First()
	if gap.Date.Day() != 4 || gap.Date.Hour() != 1 {
		t.Errorf("gap day starts at %v, want 2018-11-04 01:00", gap.Date)
	}
	// Sunrise is about 06:20 -02 on the gap day.
	if rise := gap.SunriseTime(); rise.Day() != 4 || rise.Hour() != 6 {
		t.Errorf("SunriseTime() = %v", rise)
	}
}

func TestBuildSeries_EvaluatesAtDayStart(t *testing.T) {
	ny := loadLocation(t, "America/New_York")
	afternoon := time.Date(2021, time.June, 21, 15, 0, 0, 0, ny)

	s, err := suntrack.BuildSeries(raleigh, afternoon, afternoon)
	if err != nil {
		t.Fatalf("BuildSeries() error = %v", err)
	}
	atMidnight, err := suntrack.ComputeSolarDay(raleigh, time.Date(2021, time.June, 21, 0, 0, 0, 0, ny))
	if err != nil {
		t.Fatalf("ComputeSolarDay() error = %v", err)
	}
	atAfternoon, err := suntrack.ComputeSolarDay(raleigh, afternoon)
	if err != nil {
		t.Fatalf("ComputeSolarDay() error = %v", err)
	}

	got := s.First()
	if !got.Date.Equal(atMidnight.Date) || got.DayLength != atMidnight.DayLength {
		t.Errorf("record = %v %.6f, want the day start %v %.6f",
			got.Date, got.DayLength, atMidnight.Date, atMidnight.DayLength)
	}
	// The instant of evaluation moves the fractional year, so the afternoon
	// differs slightly from the day start.
	if got.DayLength == atAfternoon.DayLength {
		t.Errorf("expected the afternoon evaluation to differ from the series record")
	}
	t.Logf("day start %.6f h, afternoon %.6f h", got.DayLength, atAfternoon.DayLength)
}

func TestSeries_NilAccessors(t *testing.T) {
	var s *suntrack.Series
	if s.Len() != 0 || s.Days() != nil || s.Location() != (suntrack.Coordinates{}) {
		t.Errorf("nil Series should look empty")
	}
	if from, to := s.Range(); !from.IsZero() || !to.IsZero() {
		t.Errorf("Range() = %v, %v", from, to)
	}

	defer func() {
		if recover() == nil {
			t.Error("First() on a nil Series should panic")
		}
	}()
	s.First()
}
