package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habit-service/internal/model"
)

func TestDecodeHabits(t *testing.T) {
	logger := zap.NewNop()

	t.Run("empty payload yields empty collection", func(t *testing.T) {
		assert.Empty(t, decodeHabits(nil, logger))
		assert.Empty(t, decodeHabits([]byte{}, logger))
	})

	t.Run("malformed payload degrades to empty collection", func(t *testing.T) {
		assert.Empty(t, decodeHabits([]byte(`{"not":"a list"`), logger))
		assert.Empty(t, decodeHabits([]byte(`42`), logger))
	})

	t.Run("valid payload keeps field names and order", func(t *testing.T) {
		payload := []byte(`[
			{"id":"a","name":"Thiền","frequency":"daily","category":"mindfulness","completedDates":["2026-03-09"],"createdAt":"2026-03-01T08:00:00Z"},
			{"id":"b","name":"Chạy bộ","frequency":"weekly","category":"health","completedDates":[],"createdAt":"2026-02-20T08:00:00Z"}
		]`)
		habits := decodeHabits(payload, logger)

		require.Len(t, habits, 2)
		assert.Equal(t, "a", habits[0].ID)
		assert.Equal(t, model.CategoryMindfulness, habits[0].Category)
		assert.Equal(t, []string{"2026-03-09"}, habits[0].CompletedDates)
		assert.Equal(t, "b", habits[1].ID)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("load before any save is empty", func(t *testing.T) {
		s := NewMemoryStore(logger)
		habits, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, habits)
	})

	t.Run("save then load round-trips the collection", func(t *testing.T) {
		s := NewMemoryStore(logger)
		in := []model.Habit{{
			ID:             "a",
			Name:           "Đọc sách",
			Frequency:      model.FrequencyDaily,
			Category:       model.CategoryLearning,
			CompletedDates: []string{"2026-03-10"},
			CreatedAt:      time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		}}
		require.NoError(t, s.Save(ctx, in))

		out, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("seeded garbage degrades to empty", func(t *testing.T) {
		s := NewMemoryStore(logger)
		s.Seed([]byte("definitely not json"))

		habits, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, habits)
	})
}
