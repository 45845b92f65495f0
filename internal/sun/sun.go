// Package sun implements the NOAA approximate solar-position equations
// (after Spencer/Cooper) used for daily sunrise and sunset estimates.
//
// All angles are in radians except where the name says otherwise. Times
// returned are fractional hours of local clock time.
package sun

import (
	"math"

	"github.com/thurmanmarka/suntrack/internal/timeutil"
)

// StandardZenith is the commonly used zenith angle (in degrees) for sunrise/sunset:
// 90°50' ≈ 90.833°, accounting for refraction + Sun's apparent radius.
const StandardZenith = 90.833

// Condition describes whether the Sun crosses the StandardZenith on a day.
type Condition int

const (
	// Normal means the Sun both rises and sets.
	Normal Condition = iota
	// PolarDay means the Sun stays above the horizon all day.
	PolarDay
	// PolarNight means the Sun stays below the horizon all day.
	PolarNight
)

func (c Condition) String() string {
	switch c {
	case Normal:
		return "normal"
	case PolarDay:
		return "polar day"
	case PolarNight:
		return "polar night"
	default:
		return "unknown"
	}
}

// Input is everything the equations need from an instant.
type Input struct {
	DayOfYear     int     // 1..366
	HourOfDay     float64 // local clock, fractional
	OffsetMinutes float64 // local zone offset east of UTC
}

// Hours holds sunrise and sunset in fractional hours of local clock time.
// Values are not wrapped into [0,24).
type Hours struct {
	Sunrise float64
	Sunset  float64
}

// FractionalYear returns the position in the annual cycle in radians;
// noon of January 1st maps to zero.
func FractionalYear(dayOfYear int, hourOfDay float64) float64 {
	return 2 * math.Pi / 365 * (float64(dayOfYear-1) + (hourOfDay-12)/24)
}

// EquationOfTime returns apparent minus mean solar time, in minutes.
func EquationOfTime(gamma float64) float64 {
	return 229.18 * (7.5e-5 +
		1.868e-3*math.Cos(gamma) -
		3.2e-2*math.Sin(gamma) -
		1.4615e-2*math.Cos(2*gamma) -
		4.0849e-2*math.Sin(2*gamma))
}

// Declination returns the solar declination in radians.
func Declination(gamma float64) float64 {
	return 6.918e-3 -
		3.99912e-1*math.Cos(gamma) +
		7.0257e-2*math.Sin(gamma) -
		6.758e-3*math.Cos(2*gamma) +
		9.07e-4*math.Sin(2*gamma) -
		2.697e-3*math.Cos(3*gamma) +
		1.48e-3*math.Sin(3*gamma)
}

// CosHourAngle returns the cosine of the sunrise hour angle at latitude
// lat (degrees) for declination decl. Values outside [-1, 1] mean the
// Sun does not cross the zenith angle that day.
func CosHourAngle(lat, decl float64) float64 {
	return timeutil.CosD(StandardZenith)/(timeutil.CosD(lat)*math.Cos(decl)) -
		timeutil.TanD(lat)*math.Tan(decl)
}

// RiseSet evaluates the equations for an observer at lat, lon (degrees,
// east positive). The Condition is Normal only when Hours is meaningful.
func RiseSet(lat, lon float64, in Input) (Hours, Condition) {
	gamma := FractionalYear(in.DayOfYear, in.HourOfDay)
	eqTime := EquationOfTime(gamma)
	decl := Declination(gamma)

	cosH := CosHourAngle(lat, decl)
	switch {
	case cosH < -1:
		return Hours{}, PolarDay
	case cosH > 1:
		return Hours{}, PolarNight
	}
	haDeg := timeutil.Rad2Deg(math.Acos(cosH))

	// 720 minutes is noon; 4 minutes of time per degree of longitude.
	// The offset converts the UTC-referenced result to the local clock.
	return Hours{
		Sunrise: (720 - 4*(lon+haDeg) - eqTime + in.OffsetMinutes) / 60,
		Sunset:  (720 - 4*(lon-haDeg) - eqTime + in.OffsetMinutes) / 60,
	}, Normal
}
