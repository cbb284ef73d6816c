// Package store persists the habit collection. The whole collection is
// written on every mutation; there are no partial writes, so every backend
// only needs Load and Save.
package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"habit-service/internal/model"
)

type Store interface {
	// Load returns the persisted collection, or an empty one when nothing
	// has been stored yet.
	Load(ctx context.Context) ([]model.Habit, error)
	// Save persists the full collection, replacing whatever was stored.
	Save(ctx context.Context, habits []model.Habit) error
}

// decodeHabits deserializes a stored payload. Malformed data must not take
// the service down at startup: it logs a warning and degrades to an empty
// collection instead.
func decodeHabits(data []byte, logger *zap.Logger) []model.Habit {
	if len(data) == 0 {
		return nil
	}
	var habits []model.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		logger.Warn("Stored habit payload is malformed, starting with an empty collection",
			zap.Int("payload_size", len(data)),
			zap.Error(err),
		)
		return nil
	}
	return habits
}
