package review

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS review_checkpoint (
	id         TEXT PRIMARY KEY,
	result_id  TEXT NOT NULL,
	saved_at   TIMESTAMP NOT NULL,
	field_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS review_field (
	checkpoint_id TEXT NOT NULL REFERENCES review_checkpoint(id),
	vehicle_id    TEXT NOT NULL,
	field_name    TEXT NOT NULL,
	value         TEXT,
	edited        INTEGER NOT NULL,
	edited_at     TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_review_field_checkpoint ON review_field(checkpoint_id);
`

// SQLiteStore persists review checkpoints to an embedded SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (and migrates) the checkpoint database at path.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate review schema: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveCheckpoint writes the checkpoint and its field rows in one transaction.
func (s *SQLiteStore) SaveCheckpoint(ctx context.Context, cp Checkpoint) error {
	start := time.Now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	cpID := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO review_checkpoint (id, result_id, saved_at, field_count) VALUES (?, ?, ?, ?)`,
		cpID, cp.ResultID, cp.SavedAt.UTC(), len(cp.Fields),
	); err != nil {
		return fmt.Errorf("insert checkpoint: %w", err)
	}

	for _, f := range cp.Fields {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO review_field (checkpoint_id, vehicle_id, field_name, value, edited, edited_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			cpID, f.VehicleID, f.FieldName, f.Value, f.Edited, f.EditedAt,
		); err != nil {
			return fmt.Errorf("insert field %s/%s: %w", f.VehicleID, f.FieldName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Info("review.checkpoint.saved",
		"result_id", cp.ResultID,
		"fields", len(cp.Fields),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// CheckpointCount reports the number of checkpoints saved for a result.
func (s *SQLiteStore) CheckpointCount(ctx context.Context, resultID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_checkpoint WHERE result_id = ?`, resultID,
	).Scan(&n)
	return n, err
}
