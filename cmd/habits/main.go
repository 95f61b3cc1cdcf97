package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"habits/internal/backend"
	"habits/internal/cli"
	apphttp "habits/internal/http"
	"habits/internal/identity"
	"habits/internal/log"
	"habits/internal/services"
)

func main() {
	cfg, logger := cli.Setup(log.ComponentApp)

	ctx, stop := cli.SignalContext()
	defer stop()

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateStore(ctx, backend.FromAppConfig(cfg))
	if err != nil {
		logger.Error("Failed to initialize store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Store cleanup failed", "error", err)
			}
		}()
	}

	amqpClient := cli.ConnectAMQP(cfg, logger)
	if amqpClient != nil {
		defer amqpClient.Close()
	}

	habitService := services.NewHabitService(result.Store, identity.New())

	var publisher services.AlertPublisher
	if amqpClient != nil {
		publisher = amqpClient
	}
	runner := services.NewReminderRunner(result.Store, publisher, cfg.ReminderInterval)

	srv := apphttp.NewServer(":"+cfg.Port, habitService, runner)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting habits server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := runner.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
