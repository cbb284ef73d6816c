package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"habit-service/config"
	"habit-service/internal/mqhandler"
	"habit-service/pkg/logger"
	"habit-service/pkg/mq"
	"habit-service/pkg/redis"
	"habit-service/pkg/util"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting habit-worker...",
		zap.String("mq_url", cfg.MQ.URL),
		zap.String("redis_addr", cfg.Redis.Addr),
	)

	if cfg.MQ.URL == "" {
		log.Fatal("MQ_URL is required for the worker")
	}

	rdb := redis.NewClient(cfg.Redis)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis ping failed", zap.Error(err))
	}

	deduper := util.NewDeduper(rdb, 24*time.Hour, log)
	completedHandler := mqhandler.NewHabitCompletedHandler(rdb, deduper, log)

	log.Info("Initializing MQ consumer for habit.completed...",
		zap.String("queue", "habit.completed.q"),
		zap.String("routing_key", "habit.completed"),
	)
	consumer, err := mq.NewConsumer(cfg.MQ.URL, "habit.completed.q", "habit.completed", log)
	if err != nil {
		log.Fatal("Failed to init consumer", zap.Error(err))
	}
	defer consumer.Close()

	consumer.SetHandler(completedHandler.Handle)

	go func() {
		log.Info("Starting habit.completed consumer...")
		if err := consumer.StartConsuming(); err != nil {
			log.Fatal("Consumer failed", zap.Error(err))
		}
	}()
	log.Info("habit.completed consumer started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down habit-worker gracefully...")
	consumer.Close()
	log.Info("habit-worker shutdown complete")
}
