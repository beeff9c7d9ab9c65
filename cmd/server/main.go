package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/budget-planner/internal/auth"
	"github.com/segyhp/budget-planner/internal/config"
	"github.com/segyhp/budget-planner/internal/handler"
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

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(context.Background(), db); err != nil {
		slog.Error("Failed to migrate schema", "error", err)
		os.Exit(1)
	}

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	m := metrics.New()
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	debtRepo := repository.NewDebtRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	planCache := repository.NewPlanCache(redisClient, cfg.Business.PlanCacheTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	debtService := service.NewDebtService(debtRepo, planCache, m, cfg)
	taskService := service.NewTaskService(taskRepo, alertRepo, nil, m)
	budgetService := service.NewBudgetService(categoryRepo, budgetRepo, expenseRepo, debtRepo, alertRepo)
	authService.Seeder = budgetService
	alertService := service.NewAlertService(alertRepo)
	suggestionService := service.NewSuggestionService(suggestionRepo)
	adminService := service.NewAdminService(userRepo, suggestionRepo)

	if cfg.Auth.AdminUsername != "" {
		if err := authService.EnsureAdmin(context.Background(), cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			slog.Error("Failed to create bootstrap admin", "error", err)
			os.Exit(1)
		}
	}

	// Setup routes
	routes := &handler.Router{
		Auth:        handler.NewAuthHandler(authService),
		Debts:       handler.NewDebtHandler(debtService),
		Tasks:       handler.NewTaskHandler(taskService),
		Budget:      handler.NewBudgetHandler(budgetService),
		Alerts:      handler.NewAlertHandler(alertService),
		Suggestions: handler.NewSuggestionHandler(suggestionService, adminService),
		Health: handler.NewHealthHandler(cfg.Health.Timeout, map[string]handler.HealthCheck{
			"database": handler.DatabaseCheck(db),
			"redis":    handler.RedisCheck(redisClient),
		}),
		JWT:            jwtManager,
		Admins:         authService.IsAdmin,
		Metrics:        m,
		FrontendOrigin: cfg.Server.FrontendOrigin,
	}

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      routes.Build(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
