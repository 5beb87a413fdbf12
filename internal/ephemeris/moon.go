package ephemeris

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// lunarTerm is one periodic term of the truncated lunar longitude series:
// coefficient (micro-degrees) times sin(d*D + m*M + mp*Mp + f*F).
type lunarTerm struct {
	d, m, mp, f int
	coeff       float64
}

// The dominant terms of the Meeus lunar theory (ch. 47), truncated where the
// remaining terms contribute under half an arcminute. Enough for sign,
// mansion and pada assignment, which is what the chart needs.
var lunarLongitudeTerms = []lunarTerm{
	{0, 0, 1, 0, 6288774},
	{2, 0, -1, 0, 1274027},
	{2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618},
	{0, 1, 0, 0, -185116},
	{0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793},
	{2, -1, -1, 0, 57066},
	{2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758},
	{0, 1, -1, 0, -40923},
	{1, 0, 0, 0, -34720},
	{0, 1, 1, 0, -30383},
	{2, 0, 0, -2, 15327},
	{0, 0, 1, 2, -12528},
	{0, 0, 1, -2, 10980},
	{4, 0, -1, 0, 10675},
	{0, 0, 3, 0, 10034},
	{4, 0, -2, 0, 8548},
	{2, 1, -1, 0, -7888},
	{2, 1, 0, 0, -6766},
	{1, 0, -1, 0, -5163},
	{1, 1, 0, 0, 4987},
	{2, -1, 1, 0, 4036},
}

// lunarCoeffs mirrors the series coefficients as a dense vector so each
// evaluation reduces to one dot product against the sine terms.
var lunarCoeffs = func() []float64 {
	c := make([]float64, len(lunarLongitudeTerms))
	for i, term := range lunarLongitudeTerms {
		c[i] = term.coeff
	}
	return c
}()

// fundamentalArguments returns the Moon's mean longitude and the four Delaunay
// arguments D, M, M', F at T centuries from J2000, in degrees.
func fundamentalArguments(t float64) (lp, d, m, mp, f float64) {
	lp = normalizeDeg(218.3164477 + 481267.88123421*t - 0.0015786*t*t + t*t*t/538841.0 - t*t*t*t/65194000.0)
	d = normalizeDeg(297.8501921 + 445267.1114034*t - 0.0018819*t*t + t*t*t/545868.0 - t*t*t*t/113065000.0)
	m = normalizeDeg(357.5291092 + 35999.0502909*t - 0.0001536*t*t + t*t*t/24490000.0)
	mp = normalizeDeg(134.9633964 + 477198.8675055*t + 0.0087414*t*t + t*t*t/69699.0 - t*t*t*t/14712000.0)
	f = normalizeDeg(93.2720950 + 483202.0175233*t - 0.0036539*t*t - t*t*t/3526000.0 + t*t*t*t/863310000.0)
	return
}

// moonLongitude returns the geocentric tropical longitude of the Moon at T
// centuries from J2000.
func moonLongitude(t float64) float64 {
	lp, d, m, mp, f := fundamentalArguments(t)

	sines := make([]float64, len(lunarLongitudeTerms))
	for i, term := range lunarLongitudeTerms {
		arg := (float64(term.d)*d + float64(term.m)*m + float64(term.mp)*mp + float64(term.f)*f) * degToRad
		sines[i] = math.Sin(arg)
	}

	return normalizeDeg(lp + floats.Dot(lunarCoeffs, sines)/1e6)
}

// meanLunarNode returns the tropical longitude of the mean ascending lunar
// node (Rahu) at T centuries from J2000. The mean node regresses through the
// zodiac, completing a cycle in about 18.6 years.
func meanLunarNode(t float64) float64 {
	return normalizeDeg(125.0445479 - 1934.1362891*t + 0.0020754*t*t + t*t*t/467441.0 - t*t*t*t/60616000.0)
}
