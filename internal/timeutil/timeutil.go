package timeutil

import (
	"fmt"
	"math"
	"time"
)

// StartOfDay returns the first instant of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return DayStart(year, month, day, t.Location())
}

// DayStart returns the first instant of the calendar day year-month-day in
// loc, normalizing out-of-range values the way time.Date does. This is
// local midnight, except in zones where a DST change skips midnight; there
// it is the end of the gap (e.g. 01:00 in America/Sao_Paulo on 2018-11-04).
func DayStart(year int, month time.Month, day int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	noon := time.Date(year, month, day, 12, 0, 0, 0, loc)
	if !SameDay(noon, t) {
		// time.Date resolved the missing midnight into the previous day.
		if _, end := t.ZoneBounds(); end.After(t) {
			t = end
		}
	}
	return t
}

// AddDays returns the start of the calendar day n days after t's day, in
// t's location. Across a DST transition the step is 23 or 25 hours long.
func AddDays(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	return DayStart(year, month, day+n, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// HourOfDay returns the local clock time of t as fractional hours [0,24).
func HourOfDay(t time.Time) float64 {
	return float64(t.Hour()) +
		float64(t.Minute())/60.0 +
		float64(t.Second())/3600.0 +
		float64(t.Nanosecond())/(3600.0*1e9)
}

// ZoneOffsetMinutes returns the offset of t's zone east of UTC, in minutes,
// as in effect at t (so it follows DST).
func ZoneOffsetMinutes(t time.Time) float64 {
	_, offset := t.Zone()
	return float64(offset) / 60.0
}

// FractionalHoursToTime converts fractional hours since local midnight of
// date's calendar day into a time in date's location. Midnight is taken in
// the UTC offset in effect at date, the offset the hours were computed with.
func FractionalHoursToTime(date time.Time, h float64) time.Time {
	year, month, day := date.Date()
	_, offset := date.Zone()
	base := time.Date(year, month, day, 0, 0, 0, 0, time.FixedZone("", offset))

	// Round to nearest second to avoid crazy nanosecond noise.
	sec := int64(math.Round(h * 3600))

	return base.Add(time.Duration(sec) * time.Second).In(date.Location())
}

// FormatClock renders fractional hours as HH:MM, wrapping into [0,24).
func FormatClock(h float64) string {
	if math.IsNaN(h) {
		return "--:--"
	}
	total := int(math.Round(Normalize24(h) * 60))
	return fmt.Sprintf("%02d:%02d", (total/60)%24, total%60)
}

// FormatDuration renders fractional hours as e.g. "14h32m".
func FormatDuration(h float64) string {
	if math.IsNaN(h) {
		return "-"
	}
	total := int(math.Round(h * 60))
	return fmt.Sprintf("%dh%02dm", total/60, total%60)
}

// -----------------------------
// Basic degree/radian helpers and trig with degree inputs.
// -----------------------------

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

func CosD(deg float64) float64 {
	return math.Cos(Deg2Rad(deg))
}

func TanD(deg float64) float64 {
	return math.Tan(Deg2Rad(deg))
}

func Normalize24(h float64) float64 {
	h = math.Mod(h, 24.0)
	if h < 0 {
		h += 24.0
	}
	return h
}
