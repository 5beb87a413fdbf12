package domain

import "fmt"

// Body identifies a chart body: the seven classical planets plus the two
// lunar nodes. Nodes are pseudo-bodies - Rahu is computed from the mean
// lunar node, Ketu is always derived as Rahu + 180 degrees.
type Body int

const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// ChartBodies is the canonical ordering of bodies on a chart. All chart
// output iterates in this order so that identical inputs produce
// byte-identical charts.
var ChartBodies = []Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

var bodyNames = map[Body]string{
	Sun:     "Sun",
	Moon:    "Moon",
	Mars:    "Mars",
	Mercury: "Mercury",
	Jupiter: "Jupiter",
	Venus:   "Venus",
	Saturn:  "Saturn",
	Rahu:    "Rahu",
	Ketu:    "Ketu",
}

// String returns the body name
func (b Body) String() string {
	if name, ok := bodyNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Body(%d)", int(b))
}

// MarshalText implements encoding.TextMarshaler so bodies serialize as
// names rather than bare integers in API payloads.
func (b Body) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting exactly the
// names MarshalText produces. Cached chart payloads round-trip through it.
func (b *Body) UnmarshalText(text []byte) error {
	name := string(text)
	for body, n := range bodyNames {
		if n == name {
			*b = body
			return nil
		}
	}
	return fmt.Errorf("unknown body %q", name)
}

// Valid reports whether b is one of the nine chart bodies
func (b Body) Valid() bool {
	return b >= Sun && b <= Ketu
}

// Sign is a zodiac sign index in [0,11], Aries through Pisces
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// String returns the sign name
func (s Sign) String() string {
	if s >= 0 && int(s) < len(signNames) {
		return signNames[s]
	}
	return fmt.Sprintf("Sign(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler
func (s Sign) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Sign) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range signNames {
		if n == name {
			*s = Sign(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sign %q", name)
}

// Modality is the threefold quality of a sign. It drives the starting-sign
// rule of the ninefold divisional chart.
type Modality int

const (
	Movable Modality = iota // Aries, Cancer, Libra, Capricorn
	Fixed                   // Taurus, Leo, Scorpio, Aquarius
	Dual                    // Gemini, Virgo, Sagittarius, Pisces
)

// Modality returns the sign's modality. Signs cycle movable, fixed, dual
// starting from Aries.
func (s Sign) Modality() Modality {
	return Modality(int(s) % 3)
}

// NakshatraCount is the number of lunar mansions on the ecliptic
const NakshatraCount = 27

// NakshatraSpan is the angular width of one lunar mansion: 13 degrees 20 minutes
const NakshatraSpan = 360.0 / NakshatraCount

// NakshatraNames lists the 27 lunar mansions in ecliptic order
var NakshatraNames = [NakshatraCount]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}
