package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habit-service/internal/model"
	"habit-service/internal/store"
)

type recordingPublisher struct {
	routingKeys []string
}

func (p *recordingPublisher) Publish(routingKey string, _ any) error {
	p.routingKeys = append(p.routingKeys, routingKey)
	return nil
}

var svcNow = time.Date(2026, 3, 10, 7, 45, 0, 0, time.UTC)

func newTestService(t *testing.T) (*HabitService, *store.MemoryStore, *recordingPublisher) {
	t.Helper()
	st := store.NewMemoryStore(zap.NewNop())
	pub := &recordingPublisher{}
	svc := NewHabitService(st, pub, zap.NewNop())
	svc.now = func() time.Time { return svcNow }

	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return svc, st, pub
}

func TestHabitServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates, persists and publishes", func(t *testing.T) {
		svc, st, pub := newTestService(t)
		svc.Load(ctx)

		created, ok := svc.Create(ctx, "Đọc sách", model.FrequencyDaily, model.CategoryLearning)

		require.True(t, ok)
		assert.Equal(t, "id-1", created.ID)
		assert.Equal(t, svcNow, created.CreatedAt)
		assert.Empty(t, created.CompletedDates)

		persisted, err := st.Load(ctx)
		require.NoError(t, err)
		require.Len(t, persisted, 1)
		assert.Equal(t, created.ID, persisted[0].ID)

		assert.Equal(t, []string{"habit.created"}, pub.routingKeys)
	})

	t.Run("newest habit sits at the front", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		svc.Load(ctx)

		svc.Create(ctx, "first", model.FrequencyDaily, model.CategoryOther)
		svc.Create(ctx, "second", model.FrequencyDaily, model.CategoryOther)

		habits := svc.List()
		require.Len(t, habits, 2)
		assert.Equal(t, "second", habits[0].Name)
		assert.Equal(t, "first", habits[1].Name)
	})

	t.Run("blank name is ignored and nothing is persisted or published", func(t *testing.T) {
		svc, st, pub := newTestService(t)
		svc.Load(ctx)

		_, ok := svc.Create(ctx, "   ", model.FrequencyDaily, model.CategoryOther)

		assert.False(t, ok)
		assert.Empty(t, svc.List())
		persisted, err := st.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, persisted)
		assert.Empty(t, pub.routingKeys)
	})
}

func TestHabitServiceToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("marks today and persists", func(t *testing.T) {
		svc, st, pub := newTestService(t)
		svc.Load(ctx)
		created, _ := svc.Create(ctx, "Thiền", model.FrequencyDaily, model.CategoryMindfulness)

		require.True(t, svc.Toggle(ctx, created.ID))

		habits := svc.List()
		assert.True(t, habits[0].CompletedOn("2026-03-10"))

		persisted, err := st.Load(ctx)
		require.NoError(t, err)
		assert.True(t, persisted[0].CompletedOn("2026-03-10"))

		assert.Equal(t, []string{"habit.created", "habit.completed"}, pub.routingKeys)
	})

	t.Run("toggling twice undoes the mark", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		svc.Load(ctx)
		created, _ := svc.Create(ctx, "Thiền", model.FrequencyDaily, model.CategoryMindfulness)

		svc.Toggle(ctx, created.ID)
		svc.Toggle(ctx, created.ID)

		assert.Empty(t, svc.List()[0].CompletedDates)
	})

	t.Run("unknown id is ignored", func(t *testing.T) {
		svc, _, pub := newTestService(t)
		svc.Load(ctx)

		assert.False(t, svc.Toggle(ctx, "missing"))
		assert.Empty(t, pub.routingKeys)
	})
}

func TestHabitServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes and persists the shrunk collection", func(t *testing.T) {
		svc, st, _ := newTestService(t)
		svc.Load(ctx)
		created, _ := svc.Create(ctx, "Chạy bộ", model.FrequencyWeekly, model.CategoryHealth)

		require.True(t, svc.Delete(ctx, created.ID))
		assert.Empty(t, svc.List())

		persisted, err := st.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, persisted)
	})

	t.Run("unknown id is ignored", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		svc.Load(ctx)
		svc.Create(ctx, "Chạy bộ", model.FrequencyWeekly, model.CategoryHealth)

		assert.False(t, svc.Delete(ctx, "missing"))
		assert.Len(t, svc.List(), 1)
	})
}

func TestHabitServiceLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed persisted payload degrades to empty", func(t *testing.T) {
		svc, st, _ := newTestService(t)
		st.Seed([]byte(`{"broken":`))

		svc.Load(ctx)

		assert.Empty(t, svc.List())
	})

	t.Run("previously saved collection survives a restart", func(t *testing.T) {
		st := store.NewMemoryStore(zap.NewNop())
		first := NewHabitService(st, nil, zap.NewNop())
		first.now = func() time.Time { return svcNow }
		first.Load(ctx)
		first.Create(ctx, "Đọc sách", model.FrequencyDaily, model.CategoryLearning)

		second := NewHabitService(st, nil, zap.NewNop())
		second.Load(ctx)

		habits := second.List()
		require.Len(t, habits, 1)
		assert.Equal(t, "Đọc sách", habits[0].Name)
	})
}

func TestHabitServiceTodaySummary(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	svc.Load(ctx)

	a, _ := svc.Create(ctx, "a", model.FrequencyDaily, model.CategoryOther)
	svc.Create(ctx, "b", model.FrequencyDaily, model.CategoryOther)
	svc.Toggle(ctx, a.ID)

	done, total := svc.TodaySummary()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)
}

func TestHabitServiceWeeklyStats(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	svc.Load(ctx)

	a, _ := svc.Create(ctx, "a", model.FrequencyDaily, model.CategoryOther)
	svc.Create(ctx, "b", model.FrequencyDaily, model.CategoryOther)
	svc.Toggle(ctx, a.ID)

	points := svc.WeeklyStats()
	require.Len(t, points, 7)
	assert.Equal(t, 1, points[6].Completed)
	assert.Equal(t, 2, points[6].Total)
}
