// Package domain contains the pure value types of the chart core.
// The domain layer has no infrastructure dependencies: everything here is
// created once from birth inputs and never mutated afterwards.
package domain

import "time"

// BodyPosition is a body's fully assigned place on a sidereal chart.
// Immutable once computed; owned by the Chart that created it.
type BodyPosition struct {
	Body       Body    `json:"body"`
	Longitude  float64 `json:"longitude"` // Sidereal ecliptic longitude, [0,360)
	Sign       Sign    `json:"sign"`      // [0,11]
	Degree     float64 `json:"degree"`    // Degree within sign, [0,30)
	House      int     `json:"house"`     // Whole-sign house, [1,12]; 0 on the Ascendant
	Nakshatra  int     `json:"nakshatra"` // Lunar mansion index, [0,26]
	Pada       int     `json:"pada"`      // Mansion quarter, [1,4]
	Retrograde bool    `json:"retrograde"`
}

// NakshatraName returns the name of the position's lunar mansion
func (p BodyPosition) NakshatraName() string {
	if p.Nakshatra >= 0 && p.Nakshatra < NakshatraCount {
		return NakshatraNames[p.Nakshatra]
	}
	return ""
}

// Chart is the canonical sidereal chart for one (moment, location) pair.
// Charts are value objects: no identity beyond their content, safe to cache
// under a content key. Bodies are kept in ChartBodies order so serialization
// is deterministic.
type Chart struct {
	Moment      time.Time      `json:"moment"` // Always UTC
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Ayanamsa    float64        `json:"ayanamsa"`              // Offset applied, recorded for auditability
	Ascendant   BodyPosition   `json:"ascendant"`             // House field is 0: the Ascendant defines house 1
	Bodies      []BodyPosition `json:"bodies"`                // ChartBodies order
	HouseSigns  [12]Sign       `json:"house_signs"`           // Index i holds the sign of house i+1
	Approximate bool           `json:"approximate,omitempty"` // Set only by the degraded no-birth-time mode
}

// Position returns the chart position of the given body.
// The second return is false when the body is not on the chart.
func (c *Chart) Position(b Body) (BodyPosition, bool) {
	for _, p := range c.Bodies {
		if p.Body == b {
			return p, true
		}
	}
	return BodyPosition{}, false
}

// DivisionalPosition is a body's place in a derived divisional chart
type DivisionalPosition struct {
	Body  Body `json:"body"`
	Sign  Sign `json:"sign"`
	House int  `json:"house"`
}

// DivisionalChart is a derived chart obtained by subdividing each natal
// sign into N equal parts. Owned by and deterministically derived from a
// Chart; never mutated after creation.
type DivisionalChart struct {
	Division      int                  `json:"division"` // N
	AscendantSign Sign                 `json:"ascendant_sign"`
	Bodies        []DivisionalPosition `json:"bodies"` // ChartBodies order
}

// DashaPeriod is one planetary period. Level 0 is a Mahadasha, level 1 an
// Antardasha. For a fixed parent, children are contiguous and gapless and
// their durations sum exactly to the parent's duration.
type DashaPeriod struct {
	Lord  Body      `json:"lord"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Level int       `json:"level"`
}

// Duration returns the period length
func (p DashaPeriod) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Contains reports whether t falls in [Start, End)
func (p DashaPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// DashaTimeline is the ordered Mahadasha sequence for one birth: a first
// partial period followed by eight full ones reaching 120 years after the
// start of the birth mansion's period. Antardashas are not stored; they are
// expanded on demand from their parent.
type DashaTimeline struct {
	Birth         time.Time     `json:"birth"`          // UTC
	MoonLongitude float64       `json:"moon_longitude"` // Sidereal, drives the whole timeline
	Nakshatra     int           `json:"nakshatra"`      // Birth mansion index
	Mahadashas    []DashaPeriod `json:"mahadashas"`     // 9 periods, contiguous
}

// End returns the end of the final Mahadasha
func (t *DashaTimeline) End() time.Time {
	if len(t.Mahadashas) == 0 {
		return t.Birth
	}
	return t.Mahadashas[len(t.Mahadashas)-1].End
}
