package main

import (
	"context"
	"errors"
	"os"

	"habits/internal/amqp"
	"habits/internal/cli"
	"habits/internal/log"
	"habits/internal/worker"
)

func main() {
	cfg, logger := cli.Setup(log.ComponentWorker)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the notifier")
		os.Exit(1)
	}

	amqpClient := cli.ConnectAMQP(cfg, logger)
	defer amqpClient.Close()

	ctx, stop := cli.SignalContext()
	defer stop()

	notifier := worker.NewNotifier(0)

	logger.Info("Starting habits-notifier", "queue", cfg.AMQPQueue)
	err := amqpClient.ConsumeAlertsWithRetry(ctx, func(msg *amqp.AlertMessage) error {
		return notifier.HandleAlert(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Alert consumption failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Notifier stopped", "handled", notifier.Handled())
}
