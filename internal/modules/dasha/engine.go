// Package dasha generates the Vimshottari planetary-period timeline: a
// deterministic, gapless 120-year sequence of nested periods derived from
// nothing but the Moon's sidereal longitude and the birth moment.
//
// The engine never reads the wall clock. "Current period" takes an explicit
// query moment, so regeneration from the same inputs is byte-for-byte
// identical and tests need no clock mocking.
package dasha

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/arytiwari/jioastro-sub001/internal/domain"
)

// The fixed nine-lord cycle and each lord's whole-years allotment. The
// allotments sum to exactly 120. Every lunar mansion is pre-assigned a lord
// by walking this cycle: mansion index mod 9.
var (
	lordCycle = [9]domain.Body{
		domain.Ketu, domain.Venus, domain.Sun, domain.Moon, domain.Mars,
		domain.Rahu, domain.Jupiter, domain.Saturn, domain.Mercury,
	}
	lordYears = [9]float64{7, 20, 6, 10, 7, 18, 16, 19, 17}
)

// TotalYears is the full Vimshottari cycle length
const TotalYears = 120.0

// DaysPerYear fixes the year length for all period arithmetic. Every
// duration in the timeline uses it, keeping the system internally
// consistent regardless of calendar years.
const DaysPerYear = 365.25

// ErrOutOfTimeline is returned by Current for query moments outside the
// timeline's 120-year span.
var ErrOutOfTimeline = errors.New("query moment outside dasha timeline")

// Engine generates and queries Vimshottari timelines
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a new dasha engine
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("service", "dasha").Logger(),
	}
}

// NakshatraLord returns the ruling body of a lunar mansion
func NakshatraLord(nakshatra int) domain.Body {
	return lordCycle[nakshatra%9]
}

// yearsToDuration converts fractional years to a duration via the fixed
// 365.25-day year.
func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * DaysPerYear * 24 * float64(time.Hour))
}

// Generate builds the full Mahadasha sequence from the Moon's sidereal
// longitude and the birth moment: one partial period for the birth mansion's
// lord, then eight full ones, contiguous and gapless.
func (e *Engine) Generate(moonLongitude float64, birth time.Time) (*domain.DashaTimeline, error) {
	if moonLongitude < 0 || moonLongitude >= 360 {
		return nil, domain.NewInvalidInput("moon_longitude", "%.6f outside [0,360)", moonLongitude)
	}
	if birth.IsZero() {
		return nil, domain.NewInvalidInput("birth", "zero moment")
	}
	birth = birth.UTC()

	// Multiply before dividing so exact mansion boundaries resolve to the
	// higher mansion with zero traversed fraction.
	mansionProgress := moonLongitude * domain.NakshatraCount / 360.0
	nakshatra := int(mansionProgress)
	if nakshatra >= domain.NakshatraCount {
		nakshatra = domain.NakshatraCount - 1
	}
	fraction := mansionProgress - float64(nakshatra)

	startLord := nakshatra % 9

	// Cumulative year offsets from birth. Chaining cumulative sums instead
	// of per-period additions keeps boundaries exact: each period's end is
	// the next period's start by construction.
	periods := make([]domain.DashaPeriod, 0, 9)
	elapsed := 0.0
	for i := 0; i < 9; i++ {
		idx := (startLord + i) % 9
		years := lordYears[idx]
		if i == 0 {
			years = (1 - fraction) * years
		}
		start := birth.Add(yearsToDuration(elapsed))
		elapsed += years
		end := birth.Add(yearsToDuration(elapsed))
		periods = append(periods, domain.DashaPeriod{
			Lord:  lordCycle[idx],
			Start: start,
			End:   end,
			Level: 0,
		})
	}

	return &domain.DashaTimeline{
		Birth:         birth,
		MoonLongitude: moonLongitude,
		Nakshatra:     nakshatra,
		Mahadashas:    periods,
	}, nil
}

// Antardashas expands a Mahadasha into its nine sub-periods, walking the
// lord cycle from the Mahadasha's own lord. Each sub-period for lord S lasts
// years(M)*years(S)/120, which sums to years(M) by construction since the
// nine allotments total 120. Sub-periods are computed on demand, never
// stored.
func (e *Engine) Antardashas(maha domain.DashaPeriod) []domain.DashaPeriod {
	mahaIdx := lordIndex(maha.Lord)
	total := maha.End.Sub(maha.Start)

	subs := make([]domain.DashaPeriod, 0, 9)
	elapsed := 0.0
	start := maha.Start
	for i := 0; i < 9; i++ {
		idx := (mahaIdx + i) % 9
		elapsed += lordYears[idx] / TotalYears
		// Scale against the parent's actual duration so a partial first
		// Mahadasha distributes proportionally and the children tile the
		// parent exactly.
		end := maha.Start.Add(time.Duration(elapsed * float64(total)))
		if i == 8 {
			end = maha.End
		}
		subs = append(subs, domain.DashaPeriod{
			Lord:  lordCycle[idx],
			Start: start,
			End:   end,
			Level: 1,
		})
		start = end
	}
	return subs
}

// Current resolves the active Mahadasha and Antardasha at an explicit query
// moment. Only the containing Mahadasha is expanded. Moments outside the
// timeline return ErrOutOfTimeline.
func (e *Engine) Current(timeline *domain.DashaTimeline, at time.Time) (domain.DashaPeriod, domain.DashaPeriod, error) {
	at = at.UTC()
	for _, maha := range timeline.Mahadashas {
		if !maha.Contains(at) {
			continue
		}
		for _, antar := range e.Antardashas(maha) {
			if antar.Contains(at) {
				return maha, antar, nil
			}
		}
		// The last Antardasha ends exactly at the Mahadasha end, so a
		// contained moment always matches one.
		return maha, domain.DashaPeriod{}, ErrOutOfTimeline
	}
	return domain.DashaPeriod{}, domain.DashaPeriod{}, ErrOutOfTimeline
}

func lordIndex(b domain.Body) int {
	for i, lord := range lordCycle {
		if lord == b {
			return i
		}
	}
	return 0
}
