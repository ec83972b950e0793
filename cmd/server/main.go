package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/zacxu/internship_hub/internal/app"
	"github.com/zacxu/internship_hub/internal/config"
	"github.com/zacxu/internship_hub/internal/controller"
	"github.com/zacxu/internship_hub/internal/repository"
	"github.com/zacxu/internship_hub/internal/repository/postgres"
	"github.com/zacxu/internship_hub/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	_ = migrator.Close()

	users := repository.NewUserRegistry(postgres.NewUserStore(pool))
	internships := repository.NewInternshipRegistry(postgres.NewInternshipStore(pool))
	applications := repository.NewApplicationRegistry(postgres.NewApplicationStore(pool))
	withdrawals := repository.NewWithdrawalRegistry(postgres.NewWithdrawalStore(pool))

	engine := service.NewEngine(users, internships, applications, withdrawals, logger)
	if err := engine.Load(ctx); err != nil {
		logger.Fatal("Failed to load placement engine", zap.Error(err))
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           controller.NewRouter(engine, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}
