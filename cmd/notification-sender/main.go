package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	smtplib "github.com/tiendacafe/subscription-service/internal/lib/smtp"

	"github.com/tiendacafe/subscription-service/internal/config"
	"github.com/tiendacafe/subscription-service/internal/lib/sl"
	"github.com/tiendacafe/subscription-service/internal/rabbitmq"
	services "github.com/tiendacafe/subscription-service/internal/services/sender"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting notification-sender", slog.String("env", cfg.Env))

	if cfg.AddressRabbitMQ == "" {
		logger.Error("rabbitmq address is not configured")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := rabbitmq.Connect(cfg.AddressRabbitMQ, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", sl.Err(err))
		os.Exit(1)
	}
	defer conn.Close()

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		logger.Error("failed to setup rabbitmq channel", sl.Err(err))
		os.Exit(1)
	}
	defer ch.Close()

	transport := smtplib.NewTransport(cfg.SMTPConnection, logger)
	senderService := services.NewSenderService(logger, transport)

	if err := rabbitmq.ConsumerMessage(ctx, ch, rabbitmq.WelcomeQueue, senderService.SendWelcomeEmail); err != nil {
		logger.Error("failed to start consumer", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("consuming welcome notifications", slog.String("queue", rabbitmq.WelcomeQueue))

	<-ctx.Done()
	logger.Info("notification-sender stopped gracefully")
}
