package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"habit-service/internal/model"
)

// DefaultKey is the single key holding the serialized habit collection.
const DefaultKey = "habits"

// RedisStore keeps the whole collection as one JSON value under a single key.
type RedisStore struct {
	rdb    *redis.Client
	key    string
	logger *zap.Logger
}

func NewRedisStore(rdb *redis.Client, key string, logger *zap.Logger) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{rdb: rdb, key: key, logger: logger}
}

func (s *RedisStore) Load(ctx context.Context) ([]model.Habit, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", s.key, err)
	}

	habits := decodeHabits(data, s.logger)
	s.logger.Debug("Loaded habits from redis",
		zap.String("key", s.key),
		zap.Int("count", len(habits)),
	)
	return habits, nil
}

func (s *RedisStore) Save(ctx context.Context, habits []model.Habit) error {
	if habits == nil {
		habits = []model.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("failed to encode habits: %w", err)
	}

	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		s.logger.Error("Failed to save habits", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("failed to write key %q: %w", s.key, err)
	}
	return nil
}
