// Package varga derives divisional charts from a natal chart by splitting
// each 30 degree sign into N equal parts and remapping the parts to signs
// via fixed per-division starting rules.
package varga

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/arytiwari/jioastro-sub001/internal/domain"
)

// startSignFunc returns the sign the division count starts from, given the
// natal sign. This is the only piece that differs between divisions: the
// division index itself always walks forward from the start sign, one sign
// per part, wrapping mod 12.
type startSignFunc func(natal domain.Sign) domain.Sign

// Rule describes one supported division
type Rule struct {
	Division int
	Name     string
	start    startSignFunc
}

// The shipped divisions. The ninefold chart is the canonical case; the
// twelvefold and thirtyfold rules double as validation that the start-sign
// formulation generalizes beyond N=9.
var rules = map[int]Rule{
	9:  {Division: 9, Name: "navamsa", start: navamsaStart},
	12: {Division: 12, Name: "dwadashamsha", start: func(s domain.Sign) domain.Sign { return s }},
	30: {Division: 30, Name: "trimshamsha", start: trimshamshaStart},
}

// navamsaStart: movable signs count from themselves, fixed signs from the
// 9th sign ahead, dual signs from the 5th sign ahead (zero-indexed offsets
// 0, 8 and 4).
func navamsaStart(s domain.Sign) domain.Sign {
	switch s.Modality() {
	case domain.Movable:
		return s
	case domain.Fixed:
		return domain.Sign((int(s) + 8) % 12)
	default:
		return domain.Sign((int(s) + 4) % 12)
	}
}

// trimshamshaStart: odd signs (Aries, Gemini, ...) count from Aries, even
// signs from Libra. This is the equal-part variant; the classical unequal
// five-part trimshamsha is out of scope.
func trimshamshaStart(s domain.Sign) domain.Sign {
	if int(s)%2 == 0 {
		return domain.Aries
	}
	return domain.Libra
}

// Divisions lists the supported division counts in ascending order
func Divisions() []int {
	out := make([]int, 0, len(rules))
	for n := range rules {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// DivisionIndex returns the zero-based part a degree-within-sign falls in
// for an N-fold division. Multiplies before dividing so a degree exactly on
// a part boundary lands in the higher-index part.
func DivisionIndex(degreeInSign float64, n int) int {
	idx := int(degreeInSign * float64(n) / 30.0)
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Transformer derives divisional charts
type Transformer struct {
	log zerolog.Logger
}

// NewTransformer creates a new divisional chart transformer
func NewTransformer(log zerolog.Logger) *Transformer {
	return &Transformer{
		log: log.With().Str("service", "varga").Logger(),
	}
}

// Transform derives the N-fold divisional chart from a natal chart.
// Houses in the derived chart are whole-sign houses against the derived
// Ascendant, which is the same transform applied to the natal Ascendant.
func (t *Transformer) Transform(c *domain.Chart, n int) (*domain.DivisionalChart, error) {
	rule, ok := rules[n]
	if !ok {
		return nil, domain.NewInvalidInput("division", "unsupported division count %d (supported: %v)", n, Divisions())
	}

	ascSign := divisionSign(rule, c.Ascendant.Sign, c.Ascendant.Degree)

	bodies := make([]domain.DivisionalPosition, 0, len(c.Bodies))
	for _, p := range c.Bodies {
		sign := divisionSign(rule, p.Sign, p.Degree)
		bodies = append(bodies, domain.DivisionalPosition{
			Body:  p.Body,
			Sign:  sign,
			House: (int(sign)-int(ascSign)+12)%12 + 1,
		})
	}

	return &domain.DivisionalChart{
		Division:      n,
		AscendantSign: ascSign,
		Bodies:        bodies,
	}, nil
}

// divisionSign maps a natal sign position into its division-chart sign
func divisionSign(rule Rule, natal domain.Sign, degreeInSign float64) domain.Sign {
	idx := DivisionIndex(degreeInSign, rule.Division)
	return domain.Sign((int(rule.start(natal)) + idx) % 12)
}
