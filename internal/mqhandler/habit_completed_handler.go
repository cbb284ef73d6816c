package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"habit-service/internal/event"
	"habit-service/pkg/metrics"
	"habit-service/pkg/util"
)

// HabitCompletedHandler maintains per-day completion counters from
// habit.completed events. Counters live in redis under completions:<date>.
type HabitCompletedHandler struct {
	rdb     *redis.Client
	deduper *util.Deduper
	logger  *zap.Logger
}

func NewHabitCompletedHandler(rdb *redis.Client, deduper *util.Deduper, logger *zap.Logger) *HabitCompletedHandler {
	return &HabitCompletedHandler{
		rdb:     rdb,
		deduper: deduper,
		logger:  logger,
	}
}

func (h *HabitCompletedHandler) Handle(ctx context.Context, data json.RawMessage) error {
	var evt event.HabitCompletedPayload
	if err := json.Unmarshal(data, &evt); err != nil {
		// Malformed payloads would fail forever; drop instead of requeue.
		h.logger.Error("Dropping malformed habit.completed event", zap.Error(err))
		metrics.IncrementCompletionEvent("malformed")
		return nil
	}

	if !h.deduper.AcquireOnce(ctx, "habit_completed", evt.EventID) {
		metrics.IncrementCompletionEvent("duplicate")
		return nil
	}

	key := fmt.Sprintf("completions:%s", evt.Date)
	var err error
	if evt.Completed {
		err = h.rdb.Incr(ctx, key).Err()
	} else {
		err = h.rdb.Decr(ctx, key).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to update completion counter %s: %w", key, err)
	}

	h.logger.Info("Completion event recorded",
		zap.String("habit_id", evt.HabitID),
		zap.String("date", evt.Date),
		zap.Bool("completed", evt.Completed),
	)
	metrics.IncrementCompletionEvent("recorded")
	return nil
}
