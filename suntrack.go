// Package suntrack computes daily solar events (sunrise, solar noon, sunset,
// day length) for a location over a span of calendar days, and derives
// calendrical markers such as solstices and equinoxes from the series.
//
// Everything here is a pure function over immutable values:
//
//   - ComputeSolarDay evaluates the NOAA approximation for one instant.
//   - BuildSeries expands it into one SolarDay per calendar day.
//   - Aggregate reduces a Series column to min/max/avg.
//   - DetectEvents finds solstice and equinox days.
//   - LocateNearest finds the day a timestamp falls on.
//
// Tracker holds the "current" series for callers that recompute it as a
// view window moves.
package suntrack

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/thurmanmarka/suntrack/internal/sun"
	"github.com/thurmanmarka/suntrack/internal/timeutil"
)

// Coordinates represent an observer's location.
type Coordinates struct {
	Lat float64 // degrees, north positive
	Lon float64 // degrees, east positive (west negative, e.g. -105 for 105°W)
}

// Validate reports ErrInvalidLocation for coordinates the solar equations
// cannot be evaluated at.
func (c Coordinates) Validate() error {
	switch {
	case math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90:
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidLocation, c.Lat)
	case math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180:
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidLocation, c.Lon)
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("lat=%.6f lon=%.6f", c.Lat, c.Lon)
}

// Condition records whether the Sun rises and sets on a day.
type Condition = sun.Condition

const (
	Normal     = sun.Normal
	PolarDay   = sun.PolarDay
	PolarNight = sun.PolarNight
)

// StandardZenith is the zenith angle, in degrees, at which the Sun is
// considered to rise or set.
const StandardZenith = sun.StandardZenith

var (
	// ErrNoSolarEvent is returned when the Sun does not rise or set on that date at that location.
	ErrNoSolarEvent = errors.New("sun does not rise or set on this date")

	// ErrInvalidLocation is returned for latitudes or longitudes out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidRange is returned when a series is requested with start after end.
	ErrInvalidRange = errors.New("invalid range: start is after end")

	// ErrEmptySeries is returned when there are no valid samples to work with.
	ErrEmptySeries = errors.New("series has no valid samples")

	// ErrUnknownColumn is returned for a column name Aggregate does not know.
	ErrUnknownColumn = errors.New("unknown column")
)

// NoSolarEventError describes a polar day or night. It matches
// ErrNoSolarEvent with errors.Is.
type NoSolarEventError struct {
	Date      time.Time
	Condition Condition
}

func (e *NoSolarEventError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Condition, e.Date.Format("2006-01-02"), ErrNoSolarEvent)
}

func (e *NoSolarEventError) Is(target error) bool {
	return target == ErrNoSolarEvent
}

// SolarDay holds the solar events of one calendar day. Hours are fractional
// hours of local clock time relative to Date's zone offset; they are not
// wrapped into [0,24). On days without events the hour fields are NaN and
// Condition says why.
type SolarDay struct {
	Date      time.Time // the instant evaluated, local midnight within a Series
	Sunrise   float64
	SolarNoon float64
	Sunset    float64
	DayLength float64
	Condition Condition
}

// HasEvents reports whether the Sun rises and sets on this day.
func (d SolarDay) HasEvents() bool {
	return d.Condition == Normal
}

// SunriseTime returns sunrise as a clock time on Date, or the zero time.
func (d SolarDay) SunriseTime() time.Time {
	return d.clock(d.Sunrise)
}

// SunsetTime returns sunset as a clock time on Date, or the zero time.
func (d SolarDay) SunsetTime() time.Time {
	return d.clock(d.Sunset)
}

// SolarNoonTime returns solar noon as a clock time on Date, or the zero time.
func (d SolarDay) SolarNoonTime() time.Time {
	return d.clock(d.SolarNoon)
}

func (d SolarDay) clock(h float64) time.Time {
	if !d.HasEvents() {
		return time.Time{}
	}
	return timeutil.FractionalHoursToTime(d.Date, h)
}

// ComputeSolarDay evaluates sunrise, solar noon, sunset and day length for
// the instant t at loc. The day of year, hour of day and UTC offset are all
// read from t in its own location.
//
// On polar days and nights it returns a SolarDay carrying the Condition and
// NaN hours together with a *NoSolarEventError.
func ComputeSolarDay(loc Coordinates, t time.Time) (SolarDay, error) {
	if err := loc.Validate(); err != nil {
		return SolarDay{}, err
	}
	return solarDay(loc, t)
}

// solarDay assumes loc has been validated.
func solarDay(loc Coordinates, t time.Time) (SolarDay, error) {
	hours, cond := sun.RiseSet(loc.Lat, loc.Lon, sun.Input{
		DayOfYear:     t.YearDay(),
		HourOfDay:     timeutil.HourOfDay(t),
		OffsetMinutes: timeutil.ZoneOffsetMinutes(t),
	})
	if cond != Normal {
		nan := math.NaN()
		day := SolarDay{Date: t, Sunrise: nan, SolarNoon: nan, Sunset: nan, DayLength: nan, Condition: cond}
		return day, &NoSolarEventError{Date: t, Condition: cond}
	}
	length := hours.Sunset - hours.Sunrise
	return SolarDay{
		Date:      t,
		Sunrise:   hours.Sunrise,
		SolarNoon: hours.Sunrise + length/2,
		Sunset:    hours.Sunset,
		DayLength: length,
		Condition: Normal,
	}, nil
}

// DaylightHours returns the day length in hours for the calendar day of
// date, evaluated at local midnight.
//
// If the sun does not rise or set on the given date (e.g., polar regions), it
// returns 0 and an error matching ErrNoSolarEvent.
func DaylightHours(loc Coordinates, date time.Time) (float64, error) {
	day, err := ComputeSolarDay(loc, timeutil.StartOfDay(date))
	if err != nil {
		return 0, err
	}
	return day.DayLength, nil
}
