package ephemeris

import (
	"math"
	"time"
)

// j2000 is the Julian day of the reference epoch J2000.0 (2000-01-01 12:00 TT)
const j2000 = 2451545.0

// unixEpochJD is the Julian day of the Unix epoch (1970-01-01 00:00 UTC)
const unixEpochJD = 2440587.5

// julianDay converts a UTC moment to a Julian day number.
// The TT-UTC difference (about a minute in our supported range) is ignored;
// it shifts fast-moving longitudes by well under an arcminute.
func julianDay(t time.Time) float64 {
	seconds := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return unixEpochJD + seconds/86400.0
}

// centuries returns Julian centuries elapsed since J2000.0
func centuries(jd float64) float64 {
	return (jd - j2000) / 36525.0
}

// normalizeDeg wraps an angle into [0,360)
func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	// Adding 360 to a tiny negative remainder rounds to exactly 360,
	// which sits outside the half-open interval
	if deg >= 360.0 {
		deg = 0
	}
	return deg
}

// deltaDeg returns the signed smallest angular difference a-b in [-180,180)
func deltaDeg(a, b float64) float64 {
	d := math.Mod(a-b+540.0, 360.0)
	return d - 180.0
}

const degToRad = math.Pi / 180.0
const radToDeg = 180.0 / math.Pi
