package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestSignModality(t *testing.T) {
	assert.Equal(t, Movable, Aries.Modality())
	assert.Equal(t, Fixed, Taurus.Modality())
	assert.Equal(t, Dual, Gemini.Modality())
	assert.Equal(t, Movable, Capricorn.Modality())
	assert.Equal(t, Dual, Pisces.Modality())
}

func TestBodyString(t *testing.T) {
	assert.Equal(t, "Sun", Sun.String())
	assert.Equal(t, "Ketu", Ketu.String())
	assert.True(t, Rahu.Valid())
	assert.False(t, Body(99).Valid())
}

func TestBodyTextRoundTrip(t *testing.T) {
	for _, b := range ChartBodies {
		text, err := b.MarshalText()
		require.NoError(t, err)

		var back Body
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, b, back)
	}

	var b Body
	assert.Error(t, b.UnmarshalText([]byte("Pluto")))
}

func TestSignTextRoundTrip(t *testing.T) {
	for s := Aries; s <= Pisces; s++ {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var back Sign
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	var s Sign
	assert.Error(t, s.UnmarshalText([]byte("Ophiuchus")))
}

func TestBodyPositionMsgpackRoundTrip(t *testing.T) {
	// Bodies and signs encode as names; decoding must restore the enums
	in := BodyPosition{
		Body: Ketu, Longitude: 220.5, Sign: Scorpio, Degree: 10.5,
		House: 7, Nakshatra: 16, Pada: 2, Retrograde: true,
	}

	blob, err := msgpack.Marshal(in)
	require.NoError(t, err)

	var out BodyPosition
	require.NoError(t, msgpack.Unmarshal(blob, &out))
	assert.Equal(t, in, out)
}

func TestChartBodiesOrder(t *testing.T) {
	// Nine bodies, Sun first, the nodes last
	assert.Len(t, ChartBodies, 9)
	assert.Equal(t, Sun, ChartBodies[0])
	assert.Equal(t, Rahu, ChartBodies[7])
	assert.Equal(t, Ketu, ChartBodies[8])
}

func TestDashaPeriodContains(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(10, 0, 0)
	p := DashaPeriod{Start: start, End: end}

	// Half-open interval: start inclusive, end exclusive
	assert.True(t, p.Contains(start))
	assert.True(t, p.Contains(end.Add(-time.Nanosecond)))
	assert.False(t, p.Contains(end))
	assert.False(t, p.Contains(start.Add(-time.Nanosecond)))
}

func TestChartPosition(t *testing.T) {
	c := &Chart{Bodies: []BodyPosition{{Body: Moon, Longitude: 40.0}}}

	p, ok := c.Position(Moon)
	assert.True(t, ok)
	assert.Equal(t, 40.0, p.Longitude)

	_, ok = c.Position(Saturn)
	assert.False(t, ok)
}

func TestNakshatraNames(t *testing.T) {
	assert.Len(t, NakshatraNames, NakshatraCount)
	assert.Equal(t, "Ashwini", NakshatraNames[0])
	assert.Equal(t, "Rohini", NakshatraNames[3])
	assert.Equal(t, "Revati", NakshatraNames[26])

	p := BodyPosition{Nakshatra: 3}
	assert.Equal(t, "Rohini", p.NakshatraName())
	assert.Equal(t, "", BodyPosition{Nakshatra: 99}.NakshatraName())
}

func TestErrorMessages(t *testing.T) {
	invalid := NewInvalidInput("latitude", "%.1f outside range", 95.0)
	assert.Contains(t, invalid.Error(), "latitude")
	assert.Contains(t, invalid.Error(), "95.0")

	comp := NewComputationError("position", "out of range")
	assert.Contains(t, comp.Error(), "position")

	incomplete := &IncompleteBirthDataError{Missing: []string{"birth_time"}}
	assert.Contains(t, incomplete.Error(), "birth_time")
}
