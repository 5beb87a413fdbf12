package dasha

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arytiwari/jioastro-sub001/internal/domain"
)

func testEngine() *Engine {
	return NewEngine(zerolog.Nop())
}

func TestNakshatraLord(t *testing.T) {
	// The cycle repeats every 9 mansions
	assert.Equal(t, domain.Ketu, NakshatraLord(0))
	assert.Equal(t, domain.Venus, NakshatraLord(1))
	assert.Equal(t, domain.Moon, NakshatraLord(3)) // Rohini
	assert.Equal(t, domain.Mercury, NakshatraLord(8))
	assert.Equal(t, domain.Ketu, NakshatraLord(9))
	assert.Equal(t, domain.Mercury, NakshatraLord(26))
}

func TestGenerate_MansionBoundary(t *testing.T) {
	// Moon at exactly 40.0 degrees sits on the boundary of the 4th mansion
	// (index 3, Rohini): zero fraction traversed, full first period.
	birth := time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC)

	timeline, err := testEngine().Generate(40.0, birth)
	require.NoError(t, err)

	assert.Equal(t, 3, timeline.Nakshatra)
	require.Len(t, timeline.Mahadashas, 9)

	first := timeline.Mahadashas[0]
	assert.Equal(t, domain.Moon, first.Lord)
	assert.Equal(t, birth, first.Start)

	// Full 10-year Moon period: no fraction was traversed
	wantDur := time.Duration(10 * DaysPerYear * 24 * float64(time.Hour))
	assert.Equal(t, wantDur, first.Duration())

	// With a zero fraction the nine periods span exactly 120 years
	wantEnd := birth.Add(time.Duration(TotalYears * DaysPerYear * 24 * float64(time.Hour)))
	assert.Equal(t, wantEnd, timeline.End())
}

func TestGenerate_PartialFirstPeriod(t *testing.T) {
	// Moon halfway through mansion 0 (Ashwini, lord Ketu, 7 years):
	// half the first period is already elapsed at birth.
	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	halfMansion := 360.0 / 27.0 / 2.0

	timeline, err := testEngine().Generate(halfMansion, birth)
	require.NoError(t, err)

	assert.Equal(t, 0, timeline.Nakshatra)
	first := timeline.Mahadashas[0]
	assert.Equal(t, domain.Ketu, first.Lord)

	wantDur := time.Duration(3.5 * DaysPerYear * 24 * float64(time.Hour))
	assert.InDelta(t, float64(wantDur), float64(first.Duration()), float64(time.Second))
}

func TestGenerate_LordOrder(t *testing.T) {
	birth := time.Date(1985, 3, 21, 6, 30, 0, 0, time.UTC)

	timeline, err := testEngine().Generate(40.0, birth)
	require.NoError(t, err)

	// Starting from Moon, the cycle wraps through Mercury back to Mars
	want := []domain.Body{
		domain.Moon, domain.Mars, domain.Rahu, domain.Jupiter, domain.Saturn,
		domain.Mercury, domain.Ketu, domain.Venus, domain.Sun,
	}
	for i, p := range timeline.Mahadashas {
		assert.Equal(t, want[i], p.Lord, "mahadasha %d", i)
	}
}

func TestGenerate_Contiguous(t *testing.T) {
	birth := time.Date(1972, 11, 3, 18, 45, 0, 0, time.UTC)

	timeline, err := testEngine().Generate(217.4321, birth)
	require.NoError(t, err)

	for i := 1; i < len(timeline.Mahadashas); i++ {
		assert.Equal(t, timeline.Mahadashas[i-1].End, timeline.Mahadashas[i].Start,
			"gap between mahadasha %d and %d", i-1, i)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	birth := time.Date(1995, 8, 20, 4, 15, 0, 0, time.UTC)

	a, err := testEngine().Generate(123.456789, birth)
	require.NoError(t, err)
	b, err := testEngine().Generate(123.456789, birth)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerate_InvalidLongitude(t *testing.T) {
	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, lon := range []float64{-0.001, 360.0, 400.0} {
		_, err := testEngine().Generate(lon, birth)
		var invalid *domain.InvalidInputError
		assert.ErrorAs(t, err, &invalid, "longitude %f", lon)
	}
}

func TestGenerate_ZeroBirth(t *testing.T) {
	_, err := testEngine().Generate(100.0, time.Time{})
	var invalid *domain.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestAntardashas_TileParent(t *testing.T) {
	birth := time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC)
	eng := testEngine()

	timeline, err := eng.Generate(198.7, birth)
	require.NoError(t, err)

	for _, maha := range timeline.Mahadashas {
		subs := eng.Antardashas(maha)
		require.Len(t, subs, 9)

		// First sub starts at the parent start, last ends at the parent end
		assert.Equal(t, maha.Start, subs[0].Start)
		assert.Equal(t, maha.End, subs[8].End)

		// The first sub-period belongs to the Mahadasha's own lord
		assert.Equal(t, maha.Lord, subs[0].Lord)

		// Contiguous, gapless
		for i := 1; i < 9; i++ {
			assert.Equal(t, subs[i-1].End, subs[i].Start)
		}

		for _, sub := range subs {
			assert.Equal(t, 1, sub.Level)
		}
	}
}

func TestAntardashas_ProportionalDurations(t *testing.T) {
	// For a full Saturn Mahadasha, the Saturn Antardasha lasts 19*19/120 years
	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	maha := domain.DashaPeriod{
		Lord:  domain.Saturn,
		Start: birth,
		End:   birth.Add(time.Duration(19 * DaysPerYear * 24 * float64(time.Hour))),
	}

	subs := testEngine().Antardashas(maha)
	want := 19.0 * 19.0 / TotalYears * DaysPerYear * 24 * float64(time.Hour)
	assert.InDelta(t, want, float64(subs[0].Duration()), float64(time.Second))
}

func TestCurrent(t *testing.T) {
	birth := time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC)
	eng := testEngine()

	timeline, err := eng.Generate(40.0, birth)
	require.NoError(t, err)

	// Five years in: still inside the 10-year Moon Mahadasha
	at := birth.AddDate(5, 0, 0)
	maha, antar, err := eng.Current(timeline, at)
	require.NoError(t, err)
	assert.Equal(t, domain.Moon, maha.Lord)
	assert.True(t, maha.Contains(at))
	assert.True(t, antar.Contains(at))

	// The birth moment itself is inside the first period
	maha, _, err = eng.Current(timeline, birth)
	require.NoError(t, err)
	assert.Equal(t, timeline.Mahadashas[0], maha)
}

func TestCurrent_OutOfTimeline(t *testing.T) {
	birth := time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC)
	eng := testEngine()

	timeline, err := eng.Generate(40.0, birth)
	require.NoError(t, err)

	_, _, err = eng.Current(timeline, birth.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrOutOfTimeline)

	_, _, err = eng.Current(timeline, timeline.End())
	assert.ErrorIs(t, err, ErrOutOfTimeline)
}
