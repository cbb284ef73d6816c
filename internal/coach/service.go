// Package coach asks a generative model for motivational feedback on the
// user's week. Its one hard rule: no error ever crosses this boundary — the
// caller always gets usable Vietnamese text.
package coach

import (
	"context"
	"time"

	"go.uber.org/zap"

	"habit-service/internal/model"
	"habit-service/internal/stats"
	"habit-service/pkg/circuitbreaker"
	"habit-service/pkg/metrics"
)

type Service struct {
	gen     Generator // nil when no API key is configured
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(gen Generator, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		gen:     gen,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// RequestFeedback returns motivational text for the given snapshot. An empty
// collection short-circuits to the fixed encouragement without any external
// call; any failure resolves to a fixed fallback string.
func (s *Service) RequestFeedback(ctx context.Context, habits []model.Habit, points []stats.Point) string {
	if len(habits) == 0 {
		metrics.RecordCoachCallLatency("skipped", 0)
		return EmptyStateMessage
	}

	if s.gen == nil {
		s.logger.Info("Coach generator not configured, returning fallback")
		metrics.RecordCoachCallLatency("skipped", 0)
		return ErrorFallback
	}

	prompt := BuildPrompt(habits, points, s.now())

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var text string
	start := time.Now()
	err := s.breaker.Execute(func() error {
		var genErr error
		text, genErr = s.gen.Generate(callCtx, prompt)
		return genErr
	})
	elapsed := time.Since(start)

	if err == circuitbreaker.ErrCircuitBreakerOpen {
		s.logger.Warn("Coach circuit breaker open, returning fallback")
		metrics.RecordCoachCallLatency("circuit_open", elapsed)
		return ErrorFallback
	}
	if err != nil {
		s.logger.Info("Coach call failed, returning fallback",
			zap.Int("habit_count", len(habits)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		metrics.RecordCoachCallLatency("error", elapsed)
		return ErrorFallback
	}
	if text == "" {
		s.logger.Info("Coach returned an empty response, returning fallback",
			zap.Duration("elapsed", elapsed),
		)
		metrics.RecordCoachCallLatency("empty", elapsed)
		return EmptyResponseFallback
	}

	s.logger.Info("Coach feedback generated",
		zap.Int("habit_count", len(habits)),
		zap.Int("response_size", len(text)),
		zap.Duration("elapsed", elapsed),
	)
	metrics.RecordCoachCallLatency("success", elapsed)
	return text
}
