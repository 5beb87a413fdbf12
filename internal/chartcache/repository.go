// Package chartcache provides persistent caching for computed chart records.
// Entries are keyed by (profile, chart type) and stored as msgpack blobs
// with expiration timestamps for cache-first behavior. There is no eviction
// policy beyond expiry: chart records are small and bounded per profile.
package chartcache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Chart types used as cache keys alongside the profile id
const (
	TypeNatal    = "natal"
	TypeNavamsa  = "d9"
	TypeDasha    = "dasha"
	TypeSnapshot = "daily_snapshot"
)

// chartCacheSchema is the single source of truth for the cache table
const chartCacheSchema = `
CREATE TABLE IF NOT EXISTS chart_cache (
	profile_id TEXT NOT NULL,
	chart_type TEXT NOT NULL,
	data BLOB NOT NULL,
	expires_at INTEGER NOT NULL,
	PRIMARY KEY (profile_id, chart_type)
);
`

// Repository provides cache operations for chart records
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new chart cache repository and ensures its schema
func NewRepository(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(chartCacheSchema); err != nil {
		return nil, fmt.Errorf("failed to create chart cache schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Store saves a record with expiration = now + ttl.
// Uses INSERT OR REPLACE to upsert.
func (r *Repository) Store(profileID, chartType string, record interface{}, ttl time.Duration) error {
	blob, err := msgpack.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal cache record: %w", err)
	}

	expiresAt := time.Now().Add(ttl).Unix()

	_, err = r.db.Exec(
		"INSERT OR REPLACE INTO chart_cache (profile_id, chart_type, data, expires_at) VALUES (?, ?, ?, ?)",
		profileID, chartType, blob, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store cache record %s/%s: %w", profileID, chartType, err)
	}
	return nil
}

// GetIfFresh decodes the record into out only if expires_at > now.
// Returns false when the key is missing or expired.
func (r *Repository) GetIfFresh(profileID, chartType string, out interface{}) (bool, error) {
	return r.get(profileID, chartType, out, true)
}

// Get decodes the record regardless of expiration. Stale chart data is still
// internally consistent, so callers that cannot recompute may use this as a
// fallback. Returns false when the key is missing.
func (r *Repository) Get(profileID, chartType string, out interface{}) (bool, error) {
	return r.get(profileID, chartType, out, false)
}

func (r *Repository) get(profileID, chartType string, out interface{}, freshOnly bool) (bool, error) {
	query := "SELECT data FROM chart_cache WHERE profile_id = ? AND chart_type = ?"
	args := []interface{}{profileID, chartType}
	if freshOnly {
		query += " AND expires_at > ?"
		args = append(args, time.Now().Unix())
	}

	var blob []byte
	err := r.db.QueryRow(query, args...).Scan(&blob)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get cache record %s/%s: %w", profileID, chartType, err)
	}

	if err := msgpack.Unmarshal(blob, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache record %s/%s: %w", profileID, chartType, err)
	}
	return true, nil
}

// Invalidate removes all cached records for a profile. Called whenever the
// profile's birth data changes - every chart type derives from it.
func (r *Repository) Invalidate(profileID string) error {
	_, err := r.db.Exec("DELETE FROM chart_cache WHERE profile_id = ?", profileID)
	if err != nil {
		return fmt.Errorf("failed to invalidate cache for %s: %w", profileID, err)
	}
	return nil
}

// DeleteExpired removes all rows where expires_at < now.
// Returns the number of rows deleted.
func (r *Repository) DeleteExpired() (int64, error) {
	result, err := r.db.Exec("DELETE FROM chart_cache WHERE expires_at < ?", time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cache entries: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}
