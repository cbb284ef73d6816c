package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"habit-service/config"
	"habit-service/internal/coach"
	"habit-service/internal/handler"
	"habit-service/internal/httpserver"
	"habit-service/internal/service"
	"habit-service/internal/store"
	"habit-service/pkg/db"
	"habit-service/pkg/logger"
	"habit-service/pkg/mq"
	"habit-service/pkg/redis"
)

func main() {
	// .env is optional; it usually only carries GEMINI_API_KEY locally.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting habit-service...",
		zap.String("store_backend", cfg.Store.Backend),
		zap.String("port", cfg.Server.Port),
	)

	ctx := context.Background()

	// Store backend
	var (
		st   store.Store
		deps httpserver.Deps
	)
	switch cfg.Store.Backend {
	case "redis":
		rdb := redis.NewClient(cfg.Redis)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis ping failed", zap.Error(err))
		}
		st = store.NewRedisStore(rdb, cfg.Store.Key, log)
		deps.RDB = rdb
		log.Info("Using redis store", zap.String("key", cfg.Store.Key))
	case "postgres":
		dbConn, err := db.NewConnection(cfg.DB, log)
		if err != nil {
			log.Fatal("Failed to init DB", zap.Error(err))
		}
		defer dbConn.Close()
		pgStore := store.NewPostgresStore(dbConn, log)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to ensure schema", zap.Error(err))
		}
		st = pgStore
		deps.DB = dbConn
		log.Info("Using postgres store")
	default:
		st = store.NewMemoryStore(log)
		log.Warn("No persistent store configured, habits will not survive a restart")
	}

	// Event publisher (optional)
	var publisher service.EventPublisher
	if cfg.MQ.URL != "" {
		pub, err := mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Warn("Failed to init MQ publisher, habit events disabled", zap.Error(err))
		} else {
			defer pub.Close()
			publisher = pub
			log.Info("MQ publisher initialized")
		}
	}

	habitService := service.NewHabitService(st, publisher, log)
	habitService.Load(ctx)

	// Coach (optional: without an API key every request resolves to the
	// fallback string)
	var generator coach.Generator
	if cfg.Coach.APIKey != "" {
		gen, err := coach.NewGeminiGenerator(ctx, cfg.Coach.APIKey, cfg.Coach.Model)
		if err != nil {
			log.Warn("Failed to init Gemini client, coach will use fallback responses", zap.Error(err))
		} else {
			generator = gen
			log.Info("Gemini coach initialized", zap.String("model", cfg.Coach.Model))
		}
	} else {
		log.Warn("GEMINI_API_KEY not set, coach will use fallback responses")
	}
	coachService := coach.NewService(generator, time.Duration(cfg.Coach.TimeoutSeconds)*time.Second, log)

	habitHandler := handler.NewHabitHandler(habitService, log)
	coachHandler := handler.NewCoachHandler(habitService, coachService, log)
	router := httpserver.NewRouter(habitHandler, coachHandler, log, deps)

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("habit-service is fully initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down habit-service gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("habit-service shutdown complete")
}
