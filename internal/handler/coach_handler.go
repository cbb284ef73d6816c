package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habit-service/internal/coach"
	"habit-service/internal/service"
)

// CoachHandler exposes the feedback request as an explicit two-step contract:
// POST starts a request, GET polls its state. Overlapping requests follow the
// tracker's reject-if-superseded policy.
type CoachHandler struct {
	svc     *service.HabitService
	coach   *coach.Service
	tracker *coach.Tracker
	logger  *zap.Logger
}

func NewCoachHandler(svc *service.HabitService, coachSvc *coach.Service, logger *zap.Logger) *CoachHandler {
	return &CoachHandler{
		svc:     svc,
		coach:   coachSvc,
		tracker: coach.NewTracker(),
		logger:  logger,
	}
}

func (h *CoachHandler) RequestFeedback(c *gin.Context) {
	seq := h.tracker.Begin()
	habits := h.svc.List()
	points := h.svc.WeeklyStats()

	// The request outlives the HTTP exchange, so it gets its own context.
	go func() {
		text := h.coach.RequestFeedback(context.Background(), habits, points)
		if !h.tracker.Resolve(seq, text) {
			h.logger.Debug("Dropped superseded coach response", zap.Uint64("seq", seq))
		}
	}()

	c.JSON(http.StatusAccepted, h.tracker.Snapshot())
}

func (h *CoachHandler) PollFeedback(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Snapshot())
}
