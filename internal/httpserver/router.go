package httpserver

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"habit-service/internal/handler"
	"habit-service/pkg/metrics"
	"habit-service/pkg/trace"
)

// Deps carries the optional backends readyz should check. Nil fields are
// skipped, matching whichever store backend was configured.
type Deps struct {
	DB  *pgxpool.Pool
	RDB *redis.Client
}

func NewRouter(habitHandler *handler.HabitHandler, coachHandler *handler.CoachHandler, logger *zap.Logger, deps Deps) *gin.Engine {
	r := gin.Default()

	// Trace-ID propagation.
	r.Use(func(c *gin.Context) {
		traceID := trace.FromHeader(c.GetHeader(trace.Header))
		c.Request = c.Request.WithContext(trace.WithContext(c.Request.Context(), traceID))
		c.Header(trace.Header, traceID)
		c.Next()
	})

	// Request logging + latency metric.
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("trace_id", trace.FromContext(c.Request.Context())),
		)
		metrics.RecordHTTPRequestDuration(c.Request.Method, c.FullPath(), strconv.Itoa(status), latency)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if deps.DB != nil {
			if err := deps.DB.Ping(ctx); err != nil {
				c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
				return
			}
		}
		if deps.RDB != nil {
			if err := deps.RDB.Ping(ctx).Err(); err != nil {
				c.JSON(500, gin.H{"status": "redis_not_ready", "error": err.Error()})
				return
			}
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/habits", habitHandler.ListHabits)
	r.POST("/habits", habitHandler.CreateHabit)
	r.POST("/habits/:id/toggle", habitHandler.ToggleHabit)
	r.DELETE("/habits/:id", habitHandler.DeleteHabit)
	r.GET("/stats/weekly", habitHandler.WeeklyStats)
	r.POST("/coach/feedback", coachHandler.RequestFeedback)
	r.GET("/coach/feedback", coachHandler.PollFeedback)

	return r
}
