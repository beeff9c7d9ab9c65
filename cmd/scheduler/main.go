package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/segyhp/budget-planner/internal/config"
	"github.com/segyhp/budget-planner/internal/metrics"
	"github.com/segyhp/budget-planner/internal/repository"
	"github.com/segyhp/budget-planner/internal/service"
	"github.com/segyhp/budget-planner/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("Starting task alert scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	taskService := service.NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewAlertRepository(db),
		nil,
		metrics.New(),
	)

	// Initialize cron scheduler
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if err := setupCronJobs(c, cfg, taskService); err != nil {
		slog.Error("Failed to schedule jobs", "error", err)
		os.Exit(1)
	}

	// Start the scheduler
	c.Start()
	slog.Info("Scheduler started", "schedule", cfg.Scheduler.TaskAlertSchedule, "timezone", cfg.Scheduler.Timezone)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	slog.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, tasks *service.TaskService) error {
	_, err := c.AddFunc(cfg.Scheduler.TaskAlertSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		raised, err := tasks.ProcessTaskAlerts(ctx, nil, time.Now())
		if err != nil {
			slog.Error("Task alert sweep failed", "error", err)
			return
		}
		slog.Debug("Task alert sweep finished", "alerts_raised", raised)
	})
	return err
}
