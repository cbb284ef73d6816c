package store

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"habit-service/internal/model"
)

// MemoryStore holds the serialized collection in process memory. It is the
// default when no backend is configured and the fixture store in tests. It
// round-trips through JSON so it exercises the same payload path as the
// persistent backends.
type MemoryStore struct {
	mu     sync.Mutex
	data   []byte
	logger *zap.Logger
}

func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{logger: logger}
}

func (s *MemoryStore) Load(_ context.Context) ([]model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeHabits(s.data, s.logger), nil
}

func (s *MemoryStore) Save(_ context.Context, habits []model.Habit) error {
	if habits == nil {
		habits = []model.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Seed replaces the raw stored payload, valid or not. Test hook for the
// malformed-payload startup path.
func (s *MemoryStore) Seed(data []byte) {
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}
