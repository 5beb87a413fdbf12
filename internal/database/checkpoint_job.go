package database

import (
	"github.com/rs/zerolog"
)

// CheckpointJob truncates the WAL of long-running databases on a schedule so
// the log file cannot grow unbounded between restarts.
type CheckpointJob struct {
	dbs []*DB
	log zerolog.Logger
}

// NewCheckpointJob creates a checkpoint job covering the given databases
func NewCheckpointJob(dbs []*DB, log zerolog.Logger) *CheckpointJob {
	return &CheckpointJob{
		dbs: dbs,
		log: log.With().Str("job", "wal_checkpoint").Logger(),
	}
}

// Run checkpoints every database, continuing past individual failures and
// returning the first error encountered.
func (j *CheckpointJob) Run() error {
	var firstErr error
	for _, db := range j.dbs {
		if err := db.WALCheckpoint(""); err != nil {
			j.log.Error().Err(err).Str("database", db.Name()).Msg("WAL checkpoint failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		j.log.Debug().Str("database", db.Name()).Msg("WAL checkpoint completed")
	}
	return firstErr
}

// Name returns the job name for scheduling and logging
func (j *CheckpointJob) Name() string {
	return "wal_checkpoint"
}
