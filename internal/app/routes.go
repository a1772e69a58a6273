// Package app предоставляет маршруты для основного приложения.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/tiendacafe/subscription-service/internal/http/handlers/subscription/create"
	"github.com/tiendacafe/subscription-service/internal/http/handlers/subscription/list"
	"github.com/tiendacafe/subscription-service/internal/http/handlers/subscription/read"
	"github.com/tiendacafe/subscription-service/internal/http/handlers/subscription/remove"
	"github.com/tiendacafe/subscription-service/internal/http/handlers/subscription/update"
	"github.com/tiendacafe/subscription-service/internal/http/response"
	subservice "github.com/tiendacafe/subscription-service/internal/services/subscription"
	"github.com/tiendacafe/subscription-service/internal/web"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, subscriptionService *subservice.SubscriptionService, validationLevel string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/suscripciones", func(r chi.Router) {
		r.Post("/", create.New(logger, subscriptionService, validationLevel).ServeHTTP)
		r.Get("/", list.New(logger, subscriptionService).ServeHTTP)
		r.Get("/{id}", read.New(logger, subscriptionService).ServeHTTP)
		r.Put("/{id}", update.New(logger, subscriptionService, validationLevel).ServeHTTP)
		r.Delete("/{id}", remove.New(logger, subscriptionService).ServeHTTP)
	})

	// Статический фронтенд
	r.Get("/", web.Index())
	r.Handle("/css/*", web.Static())
	r.Handle("/js/*", web.Static())

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	// Любой непокрытый маршрут отвечает JSON-ошибкой
	notFound := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Ruta no encontrada"))
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
}
