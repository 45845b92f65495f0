package suntrack

import (
	"time"

	"github.com/thurmanmarka/suntrack/internal/solver"
)

// LocateNearest returns the day of s that q falls on: the last record whose
// Date is not after q. Queries before the first day return the first day
// and queries after the last day return the last; only an empty series is
// an error.
func LocateNearest(s *Series, q time.Time) (SolarDay, error) {
	n := s.Len()
	if n == 0 {
		return SolarDay{}, ErrEmptySeries
	}
	i := solver.Bisect(n, func(i int) bool { return s.At(i).Date.After(q) })
	if i > 0 {
		i--
	}
	return s.At(i), nil
}
