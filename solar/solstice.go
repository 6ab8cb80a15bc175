package solar

import (
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/solstice"
)

// jdeToTime converts a Julian ephemeris day to a UTC instant. The TT-UT
// offset (about a minute) is ignored.
func jdeToTime(jde float64) time.Time {
	y, m, d := julian.JDToCalendar(jde)
	day := math.Floor(d)
	frac := time.Duration((d - day) * float64(24*time.Hour))
	return time.Date(y, time.Month(m), int(day), 0, 0, 0, 0, time.UTC).Add(frac).Truncate(time.Second)
}

// JuneSolstice returns the instant of the June solstice in year.
func JuneSolstice(year int) time.Time {
	return jdeToTime(solstice.June(year))
}

// DecemberSolstice returns the instant of the December solstice in year.
func DecemberSolstice(year int) time.Time {
	return jdeToTime(solstice.December(year))
}

// JuneSolsticeDate returns the UTC calendar date of the June solstice.
func JuneSolsticeDate(year int) time.Time {
	y, m, d := JuneSolstice(year).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
