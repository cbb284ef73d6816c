package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habit-service/internal/model"
	"habit-service/internal/service"
)

type HabitHandler struct {
	svc    *service.HabitService
	logger *zap.Logger
}

func NewHabitHandler(svc *service.HabitService, logger *zap.Logger) *HabitHandler {
	return &HabitHandler{svc: svc, logger: logger}
}

type createHabitRequest struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	Category  string `json:"category"`
}

// habitView is a habit plus the display fields the list screen needs.
type habitView struct {
	model.Habit
	CompletionCount int  `json:"completionCount"`
	CompletedToday  bool `json:"completedToday"`
}

func (h *HabitHandler) ListHabits(c *gin.Context) {
	habits := h.svc.List()
	done, total := h.svc.TodaySummary()
	today := h.svc.Today()

	views := make([]habitView, 0, len(habits))
	for _, habit := range habits {
		views = append(views, habitView{
			Habit:           habit,
			CompletionCount: len(habit.CompletedDates),
			CompletedToday:  habit.CompletedOn(today),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"habits": views,
		"today":  gin.H{"done": done, "total": total},
	})
}

func (h *HabitHandler) CreateHabit(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("CreateHabit: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	freq := model.Frequency(req.Frequency)
	if req.Frequency == "" {
		freq = model.FrequencyDaily
	}
	if !freq.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid frequency"})
		return
	}

	cat := model.Category(req.Category)
	if req.Category == "" {
		cat = model.CategoryOther
	}
	if !cat.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	created, ok := h.svc.Create(c.Request.Context(), req.Name, freq, cat)
	if !ok {
		// Empty names are silently ignored, not rejected.
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"habit": created})
}

func (h *HabitHandler) ToggleHabit(c *gin.Context) {
	id := c.Param("id")
	updated := h.svc.Toggle(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	id := c.Param("id")
	deleted := h.svc.Delete(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *HabitHandler) WeeklyStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"points": h.svc.WeeklyStats()})
}
