package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, profile DatabaseProfile) *DB {
	t.Helper()
	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "test.db"),
		Profile: profile,
		Name:    "test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_DefaultsToStandardProfile(t *testing.T) {
	db, err := New(Config{
		Path: filepath.Join(t.TempDir(), "test.db"),
		Name: "test",
	})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, ProfileStandard, db.profile)
	assert.Equal(t, "test", db.Name())
}

func TestHealthChecks(t *testing.T) {
	db := openTestDB(t, ProfileStandard)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, db.QuickCheck(ctx))
	require.NoError(t, db.HealthCheck(ctx))
}

func TestWALCheckpoint(t *testing.T) {
	db := openTestDB(t, ProfileCache)

	_, err := db.Conn().Exec("CREATE TABLE t (x INTEGER)")
	require.NoError(t, err)
	_, err = db.Conn().Exec("INSERT INTO t VALUES (1)")
	require.NoError(t, err)

	// Empty mode defaults to TRUNCATE
	require.NoError(t, db.WALCheckpoint(""))
	require.NoError(t, db.WALCheckpoint("PASSIVE"))
}

func TestCheckpointJob(t *testing.T) {
	a := openTestDB(t, ProfileStandard)
	b := openTestDB(t, ProfileCache)

	job := NewCheckpointJob([]*DB{a, b}, zerolog.Nop())
	assert.Equal(t, "wal_checkpoint", job.Name())
	require.NoError(t, job.Run())
}
