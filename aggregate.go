package suntrack

import (
	"fmt"
	"strings"
)

// Column names a numeric field of SolarDay.
type Column string

const (
	ColumnSunrise   Column = "sunrise"
	ColumnSunset    Column = "sunset"
	ColumnDayLength Column = "dayLength"
	ColumnSolarNoon Column = "solarNoon"
)

// Columns lists every column Aggregate accepts.
var Columns = []Column{ColumnSunrise, ColumnSolarNoon, ColumnSunset, ColumnDayLength}

// ParseColumn maps a column name, case-insensitively, to a Column.
func ParseColumn(name string) (Column, error) {
	for _, c := range Columns {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

func (c Column) value(d SolarDay) (float64, bool) {
	switch c {
	case ColumnSunrise:
		return d.Sunrise, true
	case ColumnSunset:
		return d.Sunset, true
	case ColumnDayLength:
		return d.DayLength, true
	case ColumnSolarNoon:
		return d.SolarNoon, true
	}
	return 0, false
}

// Stats summarizes one column of a Series. It describes the Series it was
// computed from; rebuild it whenever the Series changes.
type Stats struct {
	Column Column
	Min    float64
	Max    float64
	Avg    float64
	Count  int // number of days with events
}

// Aggregate computes min, max and average of col over s. Days without
// events are not samples. It fails with ErrUnknownColumn for an unknown
// column and ErrEmptySeries when no day has events.
func Aggregate(s *Series, col Column) (Stats, error) {
	if _, ok := col.value(SolarDay{}); !ok {
		return Stats{}, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	st := Stats{Column: col}
	var sum float64
	for i := 0; i < s.Len(); i++ {
		d := s.At(i)
		if !d.HasEvents() {
			continue
		}
		v, _ := col.value(d)
		if st.Count == 0 {
			st.Min, st.Max = v, v
		} else {
			if v < st.Min {
				st.Min = v
			}
			if v > st.Max {
				st.Max = v
			}
		}
		sum += v
		st.Count++
	}
	if st.Count == 0 {
		return Stats{}, fmt.Errorf("%w: column %s", ErrEmptySeries, col)
	}
	st.Avg = sum / float64(st.Count)
	return st, nil
}
