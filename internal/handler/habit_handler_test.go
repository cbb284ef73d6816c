package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habit-service/internal/coach"
	"habit-service/internal/handler"
	"habit-service/internal/httpserver"
	"habit-service/internal/service"
	"habit-service/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *service.HabitService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	svc := service.NewHabitService(store.NewMemoryStore(logger), nil, logger)
	coachSvc := coach.NewService(nil, time.Second, logger)

	habitHandler := handler.NewHabitHandler(svc, logger)
	coachHandler := handler.NewCoachHandler(svc, coachSvc, logger)
	return httpserver.NewRouter(habitHandler, coachHandler, logger, httpserver.Deps{}), svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHabitEndpoints(t *testing.T) {
	t.Run("create then list", func(t *testing.T) {
		r, _ := newTestRouter(t)

		w := doJSON(t, r, http.MethodPost, "/habits", `{"name":"Đọc sách","frequency":"daily","category":"learning"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var created struct {
			Habit struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"habit"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.NotEmpty(t, created.Habit.ID)
		assert.Equal(t, "Đọc sách", created.Habit.Name)

		w = doJSON(t, r, http.MethodGet, "/habits", "")
		require.Equal(t, http.StatusOK, w.Code)

		var list struct {
			Habits []struct {
				ID              string `json:"id"`
				CompletionCount int    `json:"completionCount"`
				CompletedToday  bool   `json:"completedToday"`
			} `json:"habits"`
			Today struct {
				Done  int `json:"done"`
				Total int `json:"total"`
			} `json:"today"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list.Habits, 1)
		assert.False(t, list.Habits[0].CompletedToday)
		assert.Equal(t, 0, list.Today.Done)
		assert.Equal(t, 1, list.Today.Total)
	})

	t.Run("blank name is accepted silently without creating", func(t *testing.T) {
		r, svc := newTestRouter(t)

		w := doJSON(t, r, http.MethodPost, "/habits", `{"name":"   "}`)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, svc.List())
	})

	t.Run("invalid frequency is rejected", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := doJSON(t, r, http.MethodPost, "/habits", `{"name":"x","frequency":"hourly"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("toggle marks today and is reported in the list", func(t *testing.T) {
		r, svc := newTestRouter(t)
		doJSON(t, r, http.MethodPost, "/habits", `{"name":"Thiền","category":"mindfulness"}`)
		id := svc.List()[0].ID

		w := doJSON(t, r, http.MethodPost, "/habits/"+id+"/toggle", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"updated":true`)

		done, total := svc.TodaySummary()
		assert.Equal(t, 1, done)
		assert.Equal(t, 1, total)
	})

	t.Run("toggle on unknown id reports updated false", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := doJSON(t, r, http.MethodPost, "/habits/nope/toggle", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"updated":false`)
	})

	t.Run("delete removes the habit", func(t *testing.T) {
		r, svc := newTestRouter(t)
		doJSON(t, r, http.MethodPost, "/habits", `{"name":"Chạy bộ","category":"health"}`)
		id := svc.List()[0].ID

		w := doJSON(t, r, http.MethodDelete, "/habits/"+id, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"deleted":true`)
		assert.Empty(t, svc.List())
	})

	t.Run("weekly stats always returns 7 points", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := doJSON(t, r, http.MethodGet, "/stats/weekly", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Points []struct {
				Date      string `json:"date"`
				Completed int    `json:"completed"`
				Total     int    `json:"total"`
			} `json:"points"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Points, 7)
	})
}

func TestCoachEndpoints(t *testing.T) {
	t.Run("request is accepted and resolves to a fallback without a generator", func(t *testing.T) {
		r, _ := newTestRouter(t)

		w := doJSON(t, r, http.MethodPost, "/coach/feedback", "")
		require.Equal(t, http.StatusAccepted, w.Code)

		require.Eventually(t, func() bool {
			poll := doJSON(t, r, http.MethodGet, "/coach/feedback", "")
			var snap struct {
				State string `json:"state"`
				Text  string `json:"text"`
			}
			if err := json.Unmarshal(poll.Body.Bytes(), &snap); err != nil {
				return false
			}
			return snap.State == "resolved" && snap.Text == coach.EmptyStateMessage
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("poll before any request reports idle", func(t *testing.T) {
		r, _ := newTestRouter(t)
		w := doJSON(t, r, http.MethodGet, "/coach/feedback", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"state":"idle"`)
	})
}
