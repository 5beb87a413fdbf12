// Package profile stores birth profiles and normalizes their birth data to
// the single UTC moment the chart core consumes. Timezone resolution happens
// here, at the boundary - nothing downstream ever sees a local time.
package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/arytiwari/jioastro-sub001/internal/domain"
)

// Date and time-of-day formats accepted on profiles
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Profile is a stored birth record. Birth time and location are optional at
// storage time; chart computation refuses profiles missing them unless the
// caller explicitly opts into the approximate mode.
type Profile struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	BirthDate        string    `json:"birth_date"`           // DateFormat
	BirthTime        *string   `json:"birth_time,omitempty"` // TimeFormat, local civil time
	UTCOffsetMinutes int       `json:"utc_offset_minutes"`   // Offset of the birth place at birth
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// HasBirthTime reports whether an exact birth time is recorded
func (p *Profile) HasBirthTime() bool {
	return p.BirthTime != nil && *p.BirthTime != ""
}

// BirthMoment resolves the profile's birth instant to UTC.
// Returns IncompleteBirthDataError when the date or time is missing, and
// InvalidInputError when a recorded value does not parse.
func (p *Profile) BirthMoment() (time.Time, error) {
	var missing []string
	if p.BirthDate == "" {
		missing = append(missing, "birth_date")
	}
	if !p.HasBirthTime() {
		missing = append(missing, "birth_time")
	}
	if len(missing) > 0 {
		return time.Time{}, &domain.IncompleteBirthDataError{Missing: missing}
	}

	return p.resolve(*p.BirthTime)
}

// ApproximateBirthMoment resolves the birth date at local noon. Only the
// explicitly requested degraded mode uses this; its output is always
// flagged approximate.
func (p *Profile) ApproximateBirthMoment() time.Time {
	moment, err := p.resolve("12:00")
	if err != nil {
		return time.Time{}
	}
	return moment
}

// resolve combines the birth date with a time of day in the birth place's
// UTC offset and converts to UTC.
func (p *Profile) resolve(timeOfDay string) (time.Time, error) {
	date, err := time.Parse(DateFormat, p.BirthDate)
	if err != nil {
		return time.Time{}, domain.NewInvalidInput("birth_date", "%q does not match %s", p.BirthDate, DateFormat)
	}
	clock, err := time.Parse(TimeFormat, timeOfDay)
	if err != nil {
		return time.Time{}, domain.NewInvalidInput("birth_time", "%q does not match %s", timeOfDay, TimeFormat)
	}

	zone := time.FixedZone("birthplace", p.UTCOffsetMinutes*60)
	local := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, zone)
	return local.UTC(), nil
}
