// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/festy23/team_tasks/internal/auth"
	"github.com/festy23/team_tasks/internal/config"
	"github.com/festy23/team_tasks/internal/database/database"
	"github.com/festy23/team_tasks/internal/database/migrate"
	"github.com/festy23/team_tasks/internal/health"
	"github.com/festy23/team_tasks/internal/middleware"
	"github.com/festy23/team_tasks/internal/notification/notifier"
	"github.com/festy23/team_tasks/internal/notification/outbox"
	notificationRepository "github.com/festy23/team_tasks/internal/notification/repository"
	notificationRouter "github.com/festy23/team_tasks/internal/notification/router"
	statisticsRouter "github.com/festy23/team_tasks/internal/statistics/router"
	taskRouter "github.com/festy23/team_tasks/internal/task/router"
	teamRepository "github.com/festy23/team_tasks/internal/team/repository"
	teamRouter "github.com/festy23/team_tasks/internal/team/router"
	userRouter "github.com/festy23/team_tasks/internal/user/router"
	"github.com/festy23/team_tasks/pkg/logger"
	"github.com/festy23/team_tasks/pkg/reporter"
)

const reporterFlushTimeout = 2 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatalw("server stopped", "error", err)
	}
}

func run(cfg config.Config, log *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := reporter.New(cfg.Notify.SentryDSN, cfg.Notify.SentryEnvironment)
	if err != nil {
		return err
	}
	defer rep.Flush(reporterFlushTimeout)

	db, err := database.Open(ctx, database.OptionsFromEnv(cfg.Logger, log))
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db, log); err != nil {
		return err
	}
	if version, dirty, err := migrate.Version(db); err == nil {
		log.Infow("database schema ready", "version", version, "dirty", dirty)
	}

	box := outbox.New(notificationRepository.New(db, log), cfg.Notify.OutboxBuffer, log)
	box.Start()
	go forwardFailures(box.Failures(), rep)

	tokens := auth.NewTokenIssuer(cfg.Auth)
	assignments := notifier.New(teamRepository.New(db, log), box, rep, log)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Logger(log), middleware.Recovery(log, rep))
	authMW := middleware.Auth(tokens, log)

	r.GET("/health", health.New(db, box, log).Check)
	userRouter.RegisterRoutes(r, authMW, db, tokens, log)
	teamRouter.RegisterRoutes(r, authMW, db, log)
	taskRouter.RegisterRoutes(r, authMW, db, assignments, log)
	notificationRouter.RegisterRoutes(r, authMW, db, log)
	statisticsRouter.RegisterRoutes(r, authMW, db, log)

	srv := &http.Server{
		Addr:           cfg.Server.Address(),
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "addr", srv.Addr, "gin_mode", cfg.GinMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Infow("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
	if err := box.Close(shutdownCtx); err != nil {
		log.Warnw("notification outbox not drained", "pending", box.Pending(), "error", err)
	}

	log.Infow("server stopped")
	return nil
}

// forwardFailures reports notifications the outbox could not store. It
// returns when the outbox closes its failure channel.
func forwardFailures(failures <-chan outbox.Failure, rep reporter.Reporter) {
	for f := range failures {
		rep.Report(f.Err, map[string]string{
			"component": "outbox",
			"task_id":   f.Notification.TaskID,
			"user_id":   f.Notification.UserID,
		})
	}
}
