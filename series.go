package suntrack

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/thurmanmarka/suntrack/internal/timeutil"
)

// Series is an ordered, immutable run of SolarDay records, one per local
// calendar day, strictly increasing by Date. A new range or location means
// a new Series; existing ones are never patched.
type Series struct {
	loc  Coordinates
	days []SolarDay
}

// BuildSeries computes one SolarDay per calendar day from the day of start
// to the day of end, inclusive, in start's time zone. Each record is
// evaluated at the start of its day (local midnight, or the end of the DST
// gap in zones that skip midnight), not at start's clock time, so a record
// equals ComputeSolarDay of the day start. Days are stepped on the
// calendar, so a step is 23 or 25 hours long across a DST change and
// day-of-year never repeats or skips.
//
// Polar days are kept in the series with NaN hours and their Condition.
func BuildSeries(loc Coordinates, start, end time.Time) (*Series, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	tz := start.Location()
	year, month, day := start.Date()
	last := timeutil.StartOfDay(end.In(tz))

	days := make([]SolarDay, 0, int(last.Sub(timeutil.StartOfDay(start)).Hours()/24)+1)
	for i := 0; ; i++ {
		d := timeutil.DayStart(year, month, day+i, tz)
		if d.After(last) {
			break
		}
		sd, err := solarDay(loc, d)
		if err != nil && !errors.Is(err, ErrNoSolarEvent) {
			return nil, err
		}
		days = append(days, sd)
	}
	return &Series{loc: loc, days: days}, nil
}

// Location returns the coordinates the series was built for.
func (s *Series) Location() Coordinates {
	if s == nil {
		return Coordinates{}
	}
	return s.loc
}

// Len returns the number of days in the series; a nil Series is empty.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.days)
}

// At returns the i'th day. Like a slice index it panics when i is out of
// range, including on an empty or nil Series.
func (s *Series) At(i int) SolarDay {
	return s.days[i]
}

// First returns the earliest day. It panics on an empty Series; check Len
// first.
func (s *Series) First() SolarDay {
	return s.days[0]
}

// Last returns the latest day. It panics on an empty Series; check Len
// first.
func (s *Series) Last() SolarDay {
	return s.days[len(s.days)-1]
}

// Days returns a copy of the records.
func (s *Series) Days() []SolarDay {
	if s == nil {
		return nil
	}
	return slices.Clone(s.days)
}

// Range returns the dates of the first and last records.
func (s *Series) Range() (start, end time.Time) {
	if s.Len() == 0 {
		return time.Time{}, time.Time{}
	}
	return s.First().Date, s.Last().Date
}
