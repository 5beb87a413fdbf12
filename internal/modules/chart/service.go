// Package chart assembles canonical sidereal charts from a birth moment and
// location. Every downstream feature reads the Chart produced here instead
// of recomputing astronomy.
package chart

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/arytiwari/jioastro-sub001/internal/domain"
	"github.com/arytiwari/jioastro-sub001/internal/ephemeris"
	"github.com/arytiwari/jioastro-sub001/internal/modules/profile"
)

// ephemerisBodies are the bodies fetched from the ephemeris. Ketu is absent:
// it is derived from Rahu so the 180 degree relationship is exact.
var ephemerisBodies = []domain.Body{
	domain.Sun, domain.Moon, domain.Mars, domain.Mercury,
	domain.Jupiter, domain.Venus, domain.Saturn, domain.Rahu,
}

// Service assembles sidereal charts
type Service struct {
	eph *ephemeris.Ephemeris
	log zerolog.Logger
}

// NewService creates a new chart service
func NewService(eph *ephemeris.Ephemeris, log zerolog.Logger) *Service {
	return &Service{
		eph: eph,
		log: log.With().Str("service", "chart").Logger(),
	}
}

// Assemble computes the full sidereal chart for a UTC moment and location.
// All-or-nothing: it returns a complete Chart or an error, never a partial
// result. Identical inputs always produce identical Charts.
func (s *Service) Assemble(moment time.Time, latitude, longitude float64) (*domain.Chart, error) {
	if latitude < -90 || latitude > 90 {
		return nil, domain.NewInvalidInput("latitude", "%.4f outside [-90,90]", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return nil, domain.NewInvalidInput("longitude", "%.4f outside [-180,180]", longitude)
	}
	if moment.IsZero() {
		return nil, domain.NewInvalidInput("moment", "zero moment")
	}

	// The instant is unambiguous; normalize the representation to UTC
	// before any astronomical call.
	moment = moment.UTC()

	ascTropical, err := s.eph.Ascendant(moment, latitude, longitude)
	if err != nil {
		return nil, err
	}
	ascSidereal := s.eph.Sidereal(moment, ascTropical)
	ascendant := positionAt(0, ascSidereal, false, 0)
	ascendant.House = 0 // The Ascendant defines house 1; it carries no house itself
	ascSign := ascendant.Sign

	bodies := make([]domain.BodyPosition, 0, len(domain.ChartBodies))
	var rahuLongitude float64
	for _, body := range ephemerisBodies {
		tropical, retro, err := s.eph.Position(moment, body)
		if err != nil {
			return nil, err
		}
		sidereal := s.eph.Sidereal(moment, tropical)
		if body == domain.Rahu {
			rahuLongitude = sidereal
		}
		bodies = append(bodies, positionAt(body, sidereal, retro, ascSign))
	}

	// Ketu reuses Rahu's computed longitude, never an independent
	// ephemeris call, and is always retrograde.
	ketuLongitude := math.Mod(rahuLongitude+180.0, 360.0)
	bodies = append(bodies, positionAt(domain.Ketu, ketuLongitude, true, ascSign))

	var houseSigns [12]domain.Sign
	for i := 0; i < 12; i++ {
		houseSigns[i] = domain.Sign((int(ascSign) + i) % 12)
	}

	return &domain.Chart{
		Moment:     moment,
		Latitude:   latitude,
		Longitude:  longitude,
		Ayanamsa:   s.eph.Ayanamsa(moment),
		Ascendant:  ascendant,
		Bodies:     bodies,
		HouseSigns: houseSigns,
	}, nil
}

// AssembleForProfile computes the chart for a stored birth profile.
// A profile missing birth time or location yields IncompleteBirthDataError
// unless allowApproximate is set, in which case local noon is assumed and
// the resulting chart is flagged Approximate.
func (s *Service) AssembleForProfile(p *profile.Profile, allowApproximate bool) (*domain.Chart, error) {
	if p.Latitude == nil || p.Longitude == nil {
		return nil, &domain.IncompleteBirthDataError{Missing: []string{"latitude", "longitude"}}
	}

	moment, err := p.BirthMoment()
	if err != nil {
		var incomplete *domain.IncompleteBirthDataError
		if !allowApproximate || !errors.As(err, &incomplete) {
			return nil, err
		}
		moment = p.ApproximateBirthMoment()
		s.log.Warn().
			Str("profile_id", p.ID.String()).
			Time("assumed_moment", moment).
			Msg("Assembling approximate chart with assumed birth time")
	}

	c, err := s.Assemble(moment, *p.Latitude, *p.Longitude)
	if err != nil {
		return nil, err
	}
	if !p.HasBirthTime() {
		c.Approximate = true
	}
	return c, nil
}

// positionAt assigns sign, degree, house, mansion and quarter for a
// sidereal longitude. Index computations multiply before dividing so exact
// boundary longitudes land in the higher-index segment (floor semantics).
func positionAt(body domain.Body, longitude float64, retrograde bool, ascSign domain.Sign) domain.BodyPosition {
	sign := domain.Sign(int(longitude / 30.0))
	if sign > domain.Pisces {
		sign = domain.Pisces
	}
	nakshatra := int(longitude * domain.NakshatraCount / 360.0)
	if nakshatra >= domain.NakshatraCount {
		nakshatra = domain.NakshatraCount - 1
	}
	pada := int(longitude*domain.NakshatraCount*4/360.0)%4 + 1

	return domain.BodyPosition{
		Body:       body,
		Longitude:  longitude,
		Sign:       sign,
		Degree:     longitude - 30.0*float64(sign),
		House:      (int(sign)-int(ascSign)+12)%12 + 1,
		Nakshatra:  nakshatra,
		Pada:       pada,
		Retrograde: retrograde,
	}
}
