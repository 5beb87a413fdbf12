// Package ephemeris computes tropical positions for the chart bodies and the
// sidereal correction applied to them.
//
// The ayanamsa model is baked into the Ephemeris handle at construction and
// is immutable afterwards. Passing the handle by reference into every
// computation keeps the reference-frame choice visible in each signature
// instead of hiding it in process-wide state, so concurrent chart
// computations under one model share a handle safely, and a second model
// means a second handle.
package ephemeris

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/arytiwari/jioastro-sub001/internal/domain"
)

// Supported moment range. The mean-element series degrade away from J2000;
// outside this window positions are not trustworthy and the adapter refuses.
const (
	minYear = 1800
	maxYear = 2200
)

// retrogradeStep is the interval over which the longitude rate is sampled
// to derive the direction flag.
const retrogradeStep = 6 * time.Hour

// Config holds ephemeris configuration
type Config struct {
	Model AyanamsaModel // Defaults to ModelLahiri
	Log   zerolog.Logger
}

// Ephemeris is the handle wrapping the numerical theory. Construct once at
// process startup, then treat as read-only.
type Ephemeris struct {
	model AyanamsaModel
	log   zerolog.Logger
}

// New creates an Ephemeris with the ayanamsa model fixed for its lifetime
func New(cfg Config) (*Ephemeris, error) {
	model := cfg.Model
	if model == "" {
		model = ModelLahiri
	}
	if model != ModelLahiri {
		return nil, domain.NewInvalidInput("ayanamsa_model", "unsupported model %q", string(model))
	}
	return &Ephemeris{
		model: model,
		log:   cfg.Log.With().Str("component", "ephemeris").Logger(),
	}, nil
}

// Model returns the ayanamsa model this handle was constructed with
func (e *Ephemeris) Model() AyanamsaModel {
	return e.model
}

// checkMoment validates the adapter's preconditions: the moment must be UTC
// and inside the supported ephemeris range.
func checkMoment(moment time.Time, op string) error {
	if moment.Location() != time.UTC {
		return domain.NewInvalidInput("moment", "must be UTC, got zone %s", moment.Location().String())
	}
	if y := moment.Year(); y < minYear || y > maxYear {
		return domain.NewComputationError(op, "moment %s outside supported ephemeris range %d-%d",
			moment.Format(time.RFC3339), minYear, maxYear)
	}
	return nil
}

// tropicalLongitude dispatches to the per-body theory. Ketu is not served
// here: it must be derived from Rahu by the assembler so the exact 180
// degree relationship holds.
func tropicalLongitude(body domain.Body, t float64) (float64, bool) {
	switch body {
	case domain.Sun:
		return sunLongitude(t), true
	case domain.Moon:
		return moonLongitude(t), true
	case domain.Mercury, domain.Venus, domain.Mars, domain.Jupiter, domain.Saturn:
		return planetLongitude(body, t), true
	case domain.Rahu:
		return meanLunarNode(t), true
	default:
		return 0, false
	}
}

// Position returns the tropical ecliptic longitude in [0,360) and the
// retrograde flag for a body at the given UTC moment.
//
// Errors are never retried upstream: this is deterministic math, not I/O.
func (e *Ephemeris) Position(moment time.Time, body domain.Body) (float64, bool, error) {
	if err := checkMoment(moment, "position"); err != nil {
		return 0, false, err
	}

	t := centuries(julianDay(moment))
	lon, ok := tropicalLongitude(body, t)
	if !ok {
		return 0, false, domain.NewComputationError("position", "unsupported body %s", body)
	}

	retro := e.isRetrograde(body, moment, lon, t)
	return lon, retro, nil
}

// isRetrograde samples the longitude a few hours ahead and checks the sign
// of the rate. The mean node regresses permanently, and the luminaries never
// go retrograde, so only the five true planets need the second sample.
func (e *Ephemeris) isRetrograde(body domain.Body, moment time.Time, lon, t float64) bool {
	switch body {
	case domain.Sun, domain.Moon:
		return false
	case domain.Rahu:
		return true
	}

	tNext := centuries(julianDay(moment.Add(retrogradeStep)))
	lonNext, _ := tropicalLongitude(body, tNext)
	return deltaDeg(lonNext, lon) < 0
}

// Ayanamsa returns the sidereal offset in degrees at the given moment under
// the handle's model.
func (e *Ephemeris) Ayanamsa(moment time.Time) float64 {
	return ayanamsaValue(e.model, centuries(julianDay(moment)))
}

// Sidereal converts a tropical longitude to a sidereal one, in [0,360)
func (e *Ephemeris) Sidereal(moment time.Time, tropical float64) float64 {
	return normalizeDeg(tropical - e.Ayanamsa(moment))
}

// Ascendant returns the tropical longitude of the first-house cusp for the
// given UTC moment and geographic location (east longitude positive).
func (e *Ephemeris) Ascendant(moment time.Time, latitude, longitude float64) (float64, error) {
	if err := checkMoment(moment, "ascendant"); err != nil {
		return 0, err
	}

	jd := julianDay(moment)
	t := centuries(jd)

	// Local sidereal time from GMST plus east longitude
	gmst := normalizeDeg(280.46061837 + 360.98564736629*(jd-j2000) + 0.000387933*t*t - t*t*t/38710000.0)
	ramc := normalizeDeg(gmst+longitude) * degToRad

	// Mean obliquity of the ecliptic
	obliquity := (23.43929111 - 0.01300416667*t) * degToRad
	lat := latitude * degToRad

	asc := math.Atan2(
		math.Cos(ramc),
		-(math.Sin(ramc)*math.Cos(obliquity) + math.Tan(lat)*math.Sin(obliquity)),
	) * radToDeg

	return normalizeDeg(asc), nil
}
