package profile

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// profilesSchema is the single source of truth for the profiles table
const profilesSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	birth_date TEXT NOT NULL,
	birth_time TEXT,
	utc_offset_minutes INTEGER NOT NULL DEFAULT 0,
	latitude REAL,
	longitude REAL,
	created_at INTEGER NOT NULL
);
`

// Repository handles profile database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new profile repository and ensures its schema
func NewRepository(db *sql.DB, log zerolog.Logger) (*Repository, error) {
	if _, err := db.Exec(profilesSchema); err != nil {
		return nil, fmt.Errorf("failed to create profiles schema: %w", err)
	}
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "profile").Logger(),
	}, nil
}

// Create stores a new profile, assigning an ID and creation time if unset
func (r *Repository) Create(p *Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(
		`INSERT INTO profiles (id, name, birth_date, birth_time, utc_offset_minutes, latitude, longitude, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.Name, p.BirthDate, p.BirthTime, p.UTCOffsetMinutes, p.Latitude, p.Longitude, p.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile. Returns nil if not found (not an error).
func (r *Repository) GetByID(id uuid.UUID) (*Profile, error) {
	row := r.db.QueryRow(
		`SELECT id, name, birth_date, birth_time, utc_offset_minutes, latitude, longitude, created_at
		 FROM profiles WHERE id = ?`, id.String(),
	)

	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}
	return p, nil
}

// List returns all profiles ordered by creation time
func (r *Repository) List() ([]Profile, error) {
	rows, err := r.db.Query(
		`SELECT id, name, birth_date, birth_time, utc_offset_minutes, latitude, longitude, created_at
		 FROM profiles ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// Delete removes a profile. Deleting a missing profile is not an error.
func (r *Repository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM profiles WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", id, err)
	}
	return nil
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(s scanner) (*Profile, error) {
	var p Profile
	var id string
	var createdAt int64

	if err := s.Scan(&id, &p.Name, &p.BirthDate, &p.BirthTime, &p.UTCOffsetMinutes, &p.Latitude, &p.Longitude, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid profile id %q: %w", id, err)
	}
	p.ID = parsed
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &p, nil
}
