// Package reference provides independent solar ephemerides used to check
// the approximate equations: sunrise and sunset from go-sunrise, and the
// astronomical solstice and equinox instants from Meeus' algorithms.
package reference

import (
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/solstice"
	"github.com/nathan-osman/go-sunrise"
)

// SunriseSunset returns sunrise and sunset for the calendar day of date at
// lat, lon, in date's location. ok is false when the Sun does not rise or
// set that day.
func SunriseSunset(lat, lon float64, date time.Time) (rise, set time.Time, ok bool) {
	rise, set = sunrise.SunriseSunset(lat, lon, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return rise.In(date.Location()), set.In(date.Location()), true
}

// Seasons holds the instants of the equinoxes and solstices of a year.
type Seasons struct {
	Year      int
	March     time.Time // March equinox
	June      time.Time // June solstice
	September time.Time // September equinox
	December  time.Time // December solstice
}

// SeasonsFor returns the equinox and solstice instants of year in UTC.
// Meeus' results are in dynamical time; the ~1 minute difference from UTC
// is ignored.
func SeasonsFor(year int) Seasons {
	return Seasons{
		Year:      year,
		March:     jdeToTime(solstice.March(year)),
		June:      jdeToTime(solstice.June(year)),
		September: jdeToTime(solstice.September(year)),
		December:  jdeToTime(solstice.December(year)),
	}
}

// Each returns the four instants in calendar order with their names.
func (s Seasons) Each() []Marker {
	return []Marker{
		{Name: "march equinox", Time: s.March},
		{Name: "june solstice", Time: s.June},
		{Name: "september equinox", Time: s.September},
		{Name: "december solstice", Time: s.December},
	}
}

// Marker is a named instant.
type Marker struct {
	Name string
	Time time.Time
}

// Between returns the markers of every year touched by [from, to] that
// fall within it, in chronological order.
func Between(from, to time.Time) []Marker {
	var out []Marker
	for y := from.Year(); y <= to.Year(); y++ {
		for _, m := range SeasonsFor(y).Each() {
			if !m.Time.Before(from) && !m.Time.After(to) {
				out = append(out, m)
			}
		}
	}
	return out
}

func jdeToTime(jde float64) time.Time {
	y, m, d := julian.JDToCalendar(jde)
	day, frac := math.Modf(d)
	base := time.Date(y, time.Month(m), int(day), 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(math.Round(frac*86400)) * time.Second)
}
