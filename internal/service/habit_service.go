// Package service owns the in-memory habit collection. It applies the pure
// mutation operations under a lock, mirrors every new state to the store, and
// publishes best-effort habit events.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"habit-service/internal/event"
	"habit-service/internal/habit"
	"habit-service/internal/model"
	"habit-service/internal/stats"
	"habit-service/internal/store"
	"habit-service/pkg/metrics"
)

// EventPublisher is the slice of pkg/mq.Publisher the service needs. It may
// be nil when eventing is not configured.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type HabitService struct {
	mu        sync.Mutex
	habits    []model.Habit
	store     store.Store
	publisher EventPublisher
	logger    *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewHabitService(st store.Store, publisher EventPublisher, logger *zap.Logger) *HabitService {
	return &HabitService{
		store:     st,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Load pulls the persisted collection at startup. A failing or malformed
// store never blocks startup: the service degrades to an empty collection.
func (s *HabitService) Load(ctx context.Context) {
	habits, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to load habits, starting with an empty collection", zap.Error(err))
		habits = nil
	}

	s.mu.Lock()
	s.habits = habits
	s.mu.Unlock()

	s.logger.Info("Habit collection loaded", zap.Int("count", len(habits)))
}

// List returns a copy of the collection, newest-created first.
func (s *HabitService) List() []model.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

// Today returns the current calendar-date key.
func (s *HabitService) Today() string {
	return model.DateKey(s.now())
}

// TodaySummary reports how many habits are marked done today out of the
// whole collection.
func (s *HabitService) TodaySummary() (done, total int) {
	today := model.DateKey(s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.habits {
		if s.habits[i].CompletedOn(today) {
			done++
		}
	}
	return done, len(s.habits)
}

// Create adds a new habit at the front of the collection. A name that is
// empty after trimming is silently ignored (ok=false), matching the add
// operation's contract.
func (s *HabitService) Create(ctx context.Context, name string, freq model.Frequency, cat model.Category) (model.Habit, bool) {
	s.mu.Lock()
	next, ok := habit.Add(s.habits, name, freq, cat, s.now(), s.newID())
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("Ignored habit with empty name")
		return model.Habit{}, false
	}
	created := next[0]
	s.habits = next
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.IncrementHabitMutation("create")
	s.publish(event.RoutingKeyHabitCreated, event.HabitCreatedPayload{
		EventID:   s.newID(),
		HabitID:   created.ID,
		Name:      created.Name,
		Frequency: string(created.Frequency),
		Category:  string(created.Category),
		CreatedAt: created.CreatedAt,
	})

	s.logger.Info("Habit created",
		zap.String("habit_id", created.ID),
		zap.String("frequency", string(created.Frequency)),
		zap.String("category", string(created.Category)),
	)
	return created, true
}

// Toggle flips today's completion mark on the named habit. An unknown id is
// silently ignored (ok=false).
func (s *HabitService) Toggle(ctx context.Context, id string) bool {
	today := model.DateKey(s.now())

	s.mu.Lock()
	next, ok, completed := habit.Toggle(s.habits, id, today)
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("Ignored toggle for unknown habit", zap.String("habit_id", id))
		return false
	}
	s.habits = next
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.IncrementHabitMutation("toggle")
	s.publish(event.RoutingKeyHabitCompleted, event.HabitCompletedPayload{
		EventID:   s.newID(),
		HabitID:   id,
		Date:      today,
		Completed: completed,
	})

	s.logger.Info("Habit toggled",
		zap.String("habit_id", id),
		zap.String("date", today),
		zap.Bool("completed", completed),
	)
	return true
}

// Delete removes the named habit permanently. An unknown id is silently
// ignored (ok=false).
func (s *HabitService) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	next, ok := habit.Delete(s.habits, id)
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("Ignored delete for unknown habit", zap.String("habit_id", id))
		return false
	}
	s.habits = next
	s.persistLocked(ctx)
	s.mu.Unlock()

	metrics.IncrementHabitMutation("delete")
	s.publish(event.RoutingKeyHabitDeleted, event.HabitDeletedPayload{
		EventID: s.newID(),
		HabitID: id,
	})

	s.logger.Info("Habit deleted", zap.String("habit_id", id))
	return true
}

// WeeklyStats derives the trailing-7-day chart from the current collection.
func (s *HabitService) WeeklyStats() []stats.Point {
	return stats.Weekly(s.List(), s.now())
}

// persistLocked mirrors the current collection to the store. A failed save is
// logged and swallowed: the in-memory state stays authoritative and the next
// mutation writes the full collection again.
func (s *HabitService) persistLocked(ctx context.Context) {
	start := time.Now()
	err := s.store.Save(ctx, s.habits)
	if err != nil {
		s.logger.Error("Failed to persist habits", zap.Int("count", len(s.habits)), zap.Error(err))
		metrics.RecordStoreSaveDuration("error", time.Since(start))
		return
	}
	metrics.RecordStoreSaveDuration("success", time.Since(start))
}

// publish sends a habit event when a publisher is configured. Publishing is
// best-effort: a failure never affects the mutation that triggered it.
func (s *HabitService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		s.logger.Warn("Failed to publish habit event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
