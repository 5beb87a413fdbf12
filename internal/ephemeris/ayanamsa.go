package ephemeris

// AyanamsaModel selects the precession model used to convert tropical
// longitudes to sidereal ones. The model is a configuration choice, not a
// universal constant: two charts computed under different models are not
// comparable, which is why every Chart records the value applied.
type AyanamsaModel string

const (
	// ModelLahiri is the Chitrapaksha ayanamsa, the de-facto standard for
	// sidereal charts and the only model shipped.
	ModelLahiri AyanamsaModel = "lahiri"
)

// Lahiri reference: offset at J2000.0 in degrees, accumulating at the
// general precession rate.
const (
	lahiriAtJ2000        = 23.85236  // degrees
	precessionPerCentury = 1.3969713 // degrees per Julian century (50.2888" per year)
)

// ayanamsaValue returns the tropical-to-sidereal offset in degrees at T
// centuries from J2000 under the given model.
func ayanamsaValue(model AyanamsaModel, t float64) float64 {
	switch model {
	case ModelLahiri:
		return lahiriAtJ2000 + precessionPerCentury*t
	default:
		// New rejects unknown models; this is unreachable for a
		// constructed Ephemeris.
		return lahiriAtJ2000 + precessionPerCentury*t
	}
}
