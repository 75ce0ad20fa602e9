package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"task-dashboard/internal/config"
	router "task-dashboard/internal/http"
	"task-dashboard/internal/http/handlers"
	"task-dashboard/internal/logging"
	"task-dashboard/internal/registry"
	"task-dashboard/internal/report"
	"task-dashboard/internal/service"
	"task-dashboard/internal/taskclient"
	"task-dashboard/internal/tasks"
	"task-dashboard/internal/view"
	"task-dashboard/internal/workerpool"
)

func main() {
	cfg := config.New()
	logger := logging.New(cfg.LogFormat, cfg.LogLevel)

	client, err := taskclient.New(logger, cfg.TaskServiceURL, cfg.TaskServiceTimeout)
	if err != nil {
		logger.Fatalf("task client initiation failed: %v", err)
	}

	pool := workerpool.New(logger, cfg.PoolSize)
	pool.Start(cfg.Workers)

	svc, err := service.New(logger, client, tasks.New(logger, client), pool)
	if err != nil {
		logger.Fatalf("service initiation failed: %v", err)
	}

	renderer, err := view.New()
	if err != nil {
		logger.Fatalf("templates failed to load: %v", err)
	}

	reg := registry.NewSeeded(logger)
	admin := handlers.NewAdminHandler(logger, reg, report.NewExporter(reg), renderer)
	employee := handlers.NewEmployeeHandler(logger, svc, renderer)

	server := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router.New(logger, admin, employee, router.Options{AllowedOrigins: cfg.AllowedOrigins}),
	}

	go func() {
		logger.WithField("task_service", cfg.TaskServiceURL).Infof("listening on %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %s", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	<-stop
	logger.Info("shut down signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown failed: %v", err)
	}
	if err := pool.Shutdown(ctx); err != nil {
		logger.Errorf("pool shutdown failed: %v", err)
	}

	logger.Info("shut down gracefully")
}
