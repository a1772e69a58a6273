// Package app собирает приложение suscripciones: хранилище, кеш,
// публикацию событий, HTTP-сервер и его маршруты.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/tiendacafe/subscription-service/internal/cache"
	"github.com/tiendacafe/subscription-service/internal/config"
	"github.com/tiendacafe/subscription-service/internal/migrations"
	"github.com/tiendacafe/subscription-service/internal/rabbitmq"
	subservice "github.com/tiendacafe/subscription-service/internal/services/subscription"
	"github.com/tiendacafe/subscription-service/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New подключает хранилище, применяет миграции, поднимает кеш и,
// если настроен адрес, подключение к RabbitMQ, после чего собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var publisher subservice.EventPublisher
	if cfg.AddressRabbitMQ != "" {
		conn, err := rabbitmq.Connect(cfg.AddressRabbitMQ, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn)
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
	} else {
		logger.Info("rabbitmq is not configured, welcome emails disabled")
	}

	subscriptionService := subservice.NewSubscriptionService(db, cacheRedis, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, subscriptionService, cfg.ValidationLevel)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
