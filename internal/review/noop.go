package review

import (
	"context"
	"time"
)

// NoopStore discards checkpoints after an optional fixed delay, standing in
// for the network persistence call in simulated mode.
type NoopStore struct {
	Delay time.Duration
}

func (s *NoopStore) SaveCheckpoint(ctx context.Context, _ Checkpoint) error {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
