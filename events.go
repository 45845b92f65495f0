package suntrack

import (
	"math"
	"time"

	"github.com/thurmanmarka/suntrack/internal/solver"
)

// EquinoxTolerance is how close, in hours, a day's length must be to
// twelve hours for the day to count as an equinox (about 72 seconds).
const EquinoxTolerance = 0.02

// Events holds the calendrical markers found in one Series.
type Events struct {
	// SummerSolstice is the earliest day with the longest day length.
	SummerSolstice *time.Time
	// WinterSolstice is the earliest day with the shortest day length.
	WinterSolstice *time.Time
	// Equinoxes are the days within EquinoxTolerance of twelve hours,
	// most recent first. Daily sampling can yield zero, one or two days
	// per equinox.
	Equinoxes []time.Time
	// Crossings are the days after which day length passes through twelve
	// hours, in chronological order.
	Crossings []time.Time
}

// DetectEvents finds solstices and equinoxes in s.
//
// Solstices are the days whose length equals the series maximum (summer)
// or minimum (winter). Several days can share the extreme value with
// daily sampling; the earliest one is chosen. Both are nil when no day in
// s has events.
//
// Equinoxes are collected in reverse of scan order, i.e. most recent
// first, which is what consumers of this list expect.
func DetectEvents(s *Series) Events {
	var ev Events
	if stats, err := Aggregate(s, ColumnDayLength); err == nil {
		ev.SummerSolstice = earliestWithLength(s, stats.Max)
		ev.WinterSolstice = earliestWithLength(s, stats.Min)
	}

	for i := 0; i < s.Len(); i++ {
		d := s.At(i)
		if d.HasEvents() && math.Abs(d.DayLength-12) <= EquinoxTolerance {
			ev.Equinoxes = append([]time.Time{d.Date}, ev.Equinoxes...)
		}
	}

	lengths := make([]float64, s.Len())
	for i := range lengths {
		lengths[i] = s.At(i).DayLength
	}
	valid := func(i int) bool { return s.At(i).HasEvents() }
	for _, c := range solver.FindCrossings(lengths, valid, 12, solver.CrossingAny) {
		ev.Crossings = append(ev.Crossings, s.At(c.Index).Date)
	}
	return ev
}

func earliestWithLength(s *Series, length float64) *time.Time {
	for i := 0; i < s.Len(); i++ {
		if d := s.At(i); d.HasEvents() && d.DayLength == length {
			date := d.Date
			return &date
		}
	}
	return nil
}
