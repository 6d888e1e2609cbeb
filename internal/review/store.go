package review

import (
	"context"
	"time"
)

// FieldDelta is one field's review state at save time, recorded for audit.
type FieldDelta struct {
	VehicleID string     `json:"vehicle_id"`
	FieldName string     `json:"field_name"`
	Value     *string    `json:"value"`
	Edited    bool       `json:"edited"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

// Checkpoint is one saved review state for an extraction result.
type Checkpoint struct {
	ResultID string       `json:"result_id"`
	SavedAt  time.Time    `json:"saved_at"`
	Fields   []FieldDelta `json:"fields"`
}

// Store persists review checkpoints. Saves are all-or-nothing: a failed save
// must leave previously committed checkpoints untouched.
type Store interface {
	SaveCheckpoint(ctx context.Context, cp Checkpoint) error
}
