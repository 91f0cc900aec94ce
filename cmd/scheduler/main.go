package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/bridges-advising/scheduler/internal/app"
	"github.com/bridges-advising/scheduler/internal/config"
	"github.com/bridges-advising/scheduler/internal/repository"
	"github.com/bridges-advising/scheduler/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting advising scheduler",
		"environment", cfg.Environment,
		"merge_overlapping_slots", cfg.MergeOverlappingSlots)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	userRepo := repository.NewUserRepository(pool)
	expertiseRepo := repository.NewExpertiseRepository(pool)
	availabilityRepo := repository.NewAvailabilityRepository(pool)
	meetingRepo := repository.NewMeetingRepository(pool)
	conflictRepo := repository.NewConflictRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)

	conflictService := service.NewConflictService(
		conflictRepo, notificationRepo, activityRepo,
		userRepo, expertiseRepo, availabilityRepo, meetingRepo, logger)

	scheduler := app.NewScheduler(conflictService,
		time.Duration(cfg.AuditIntervalHours)*time.Hour, logger)
	scheduler.Start(ctx)

	logger.Info("✅ Scheduler is running, press Ctrl+C to stop")

	<-ctx.Done()

	scheduler.Stop()
	logger.Info("Shutdown complete")
}
