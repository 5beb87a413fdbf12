package chartcache

import "time"

// TTL constants per cached record type.
// These are added to time.Now() when storing to calculate expires_at.
//
// Chart records are deterministic for fixed birth data, so the TTLs exist to
// bound staleness after profile edits and ayanamsa-model changes rather than
// to track any moving upstream source.
const (
	// Natal and divisional charts: static per profile, long-lived
	TTLNatalChart      = 30 * 24 * time.Hour
	TTLDivisionalChart = 30 * 24 * time.Hour

	// Dasha timelines: static per profile too, but consumers resolve the
	// current period against them daily, keep moderately fresh
	TTLDashaTimeline = 7 * 24 * time.Hour

	// Daily snapshot payloads prepared for consumer features
	TTLDailySnapshot = 24 * time.Hour
)
