// Command taskservice runs a small task service for local development.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"task-dashboard/internal/config"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/logging"
	"task-dashboard/internal/store"
	"task-dashboard/internal/store/memory"
	"task-dashboard/internal/store/mysql"
	"task-dashboard/internal/taskservice"
)

func main() {
	cfg := config.New()
	logger := logging.New(cfg.LogFormat, cfg.LogLevel)

	st, closeStore := openStore(logger, cfg)
	defer closeStore()

	server := &http.Server{
		Addr:    cfg.TaskServicePort,
		Handler: taskservice.NewRouter(logger, st),
	}

	go func() {
		logger.WithField("store", cfg.StoreDriver).Infof("task service listening on %s", cfg.TaskServicePort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %s", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown failed: %v", err)
	}
	logger.Info("shut down gracefully")
}

func openStore(logger *logrus.Logger, cfg config.Config) (store.TaskStore, func()) {
	switch cfg.StoreDriver {
	case "mysql":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		st, err := mysql.Open(ctx, logger, cfg.StoreDSN, "tasks")
		if err != nil {
			logger.Fatalf("mysql store failed: %v", err)
		}
		return st, func() { _ = st.Close() }
	default:
		st := memory.New()
		seed(logger, st)
		return st, func() {}
	}
}

func seed(logger *logrus.Logger, st store.TaskStore) {
	demo := []domain.Task{
		{Title: "Prepare sprint demo", Description: "Slides and a short recording", Deadline: domain.NewDate(2025, time.September, 10), AssignedTo: 1},
		{Title: "Fix login redirect", Description: "Users land on a blank page after signing in", Deadline: domain.NewDate(2025, time.September, 12), AssignedTo: 1},
		{Title: "Update onboarding docs", Description: "Cover the new deploy steps", AssignedTo: 1},
	}

	for _, t := range demo {
		if _, err := st.Create(context.Background(), t); err != nil {
			logger.WithError(err).Warn("seed task")
		}
	}
}
