package ephemeris

import (
	"math"

	"github.com/arytiwari/jioastro-sub001/internal/domain"
)

// orbitalElements holds Keplerian elements at J2000.0 with linear rates per
// Julian century, from the JPL approximate-elements tables. Angles in
// degrees, semi-major axis in au.
type orbitalElements struct {
	a, aDot       float64 // Semi-major axis
	e, eDot       float64 // Eccentricity
	i, iDot       float64 // Inclination
	l, lDot       float64 // Mean longitude
	peri, periDot float64 // Longitude of perihelion
	node, nodeDot float64 // Longitude of ascending node
}

// elements indexed by body. Earth (EM barycenter) is kept separately since
// it is not a chart body but every geocentric longitude needs it.
var planetElements = map[domain.Body]orbitalElements{
	domain.Mercury: {0.38709927, 0.00000037, 0.20563593, 0.00001906, 7.00497902, -0.00594749,
		252.25032350, 149472.67411175, 77.45779628, 0.16047689, 48.33076593, -0.12534081},
	domain.Venus: {0.72333566, 0.00000390, 0.00677672, -0.00004107, 3.39467605, -0.00078890,
		181.97909950, 58517.81538729, 131.60246718, 0.00268329, 76.67984255, -0.27769418},
	domain.Mars: {1.52371034, 0.00001847, 0.09339410, 0.00007882, 1.84969142, -0.00813131,
		-4.55343205, 19140.30268499, -23.94362959, 0.44441088, 49.55953891, -0.29257343},
	domain.Jupiter: {5.20288700, -0.00011607, 0.04838624, -0.00013253, 1.30439695, -0.00183714,
		34.39644051, 3034.74612775, 14.72847983, 0.21252668, 100.47390909, 0.20469106},
	domain.Saturn: {9.53667594, -0.00125060, 0.05386179, -0.00050991, 2.48599187, 0.00193609,
		49.95424423, 1222.49362201, 92.59887831, -0.41897216, 113.66242448, -0.28867794},
}

var earthElements = orbitalElements{1.00000261, 0.00000562, 0.01671123, -0.00004392, -0.00001531, -0.01294668,
	100.46457166, 35999.37244981, 102.93768193, 0.32327364, 0.0, 0.0}

// at evaluates the elements at T Julian centuries from J2000
func (el orbitalElements) at(t float64) orbitalElements {
	return orbitalElements{
		a: el.a + el.aDot*t, e: el.e + el.eDot*t,
		i: el.i + el.iDot*t, l: el.l + el.lDot*t,
		peri: el.peri + el.periDot*t, node: el.node + el.nodeDot*t,
	}
}

// solveKepler iterates E = M + e*sin(E) to convergence. M in degrees.
func solveKepler(meanAnomaly, e float64) float64 {
	m := normalizeDeg(meanAnomaly) * degToRad
	ecc := m
	for range [12]int{} {
		delta := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return ecc
}

// heliocentric returns the ecliptic rectangular coordinates of a body with
// the given elements at T centuries from J2000, in au.
func heliocentric(el orbitalElements, t float64) (x, y, z float64) {
	e := el.at(t)

	meanAnomaly := e.l - e.peri
	argPeri := (e.peri - e.node) * degToRad
	node := e.node * degToRad
	incl := e.i * degToRad

	ecc := solveKepler(meanAnomaly, e.e)

	// Position in the orbital plane
	xp := e.a * (math.Cos(ecc) - e.e)
	yp := e.a * math.Sqrt(1-e.e*e.e) * math.Sin(ecc)

	cosW, sinW := math.Cos(argPeri), math.Sin(argPeri)
	cosO, sinO := math.Cos(node), math.Sin(node)
	cosI, sinI := math.Cos(incl), math.Sin(incl)

	x = (cosW*cosO-sinW*sinO*cosI)*xp + (-sinW*cosO-cosW*sinO*cosI)*yp
	y = (cosW*sinO+sinW*cosO*cosI)*xp + (-sinW*sinO+cosW*cosO*cosI)*yp
	z = sinW*sinI*xp + cosW*sinI*yp
	return x, y, z
}

// planetLongitude returns the geocentric tropical ecliptic longitude of a
// planet at T centuries from J2000.
func planetLongitude(body domain.Body, t float64) float64 {
	el := planetElements[body]
	px, py, _ := heliocentric(el, t)
	ex, ey, _ := heliocentric(earthElements, t)
	return normalizeDeg(math.Atan2(py-ey, px-ex) * radToDeg)
}

// sunLongitude returns the geocentric tropical longitude of the Sun, which
// is the anti-direction of Earth's heliocentric position.
func sunLongitude(t float64) float64 {
	ex, ey, _ := heliocentric(earthElements, t)
	return normalizeDeg(math.Atan2(-ey, -ex) * radToDeg)
}
