// Package list реализует HTTP-обработчик для получения всех подписок на рассылку.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tiendacafe/subscription-service/internal/http/response"
	"github.com/tiendacafe/subscription-service/internal/lib/sl"
	"github.com/tiendacafe/subscription-service/internal/models"
)

// Handler обрабатывает запросы на получение полного списка подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка подписок.
type Service interface {
	List(ctx context.Context) ([]*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Listar suscripciones
// @Description Devuelve todas las suscripciones, las más recientes primero.
// @Tags Suscripciones
// @Produce  json
// @Success 200 {array} models.Subscription "Lista de suscripciones"
// @Failure 500 {object} response.ErrorResponse "Error de base de datos"
// @Router /api/suscripciones [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error al obtener suscripciones"))
		return
	}

	log.Info("list subscriptions", slog.Int("count", len(res)))
	render.JSON(w, r, res)
}
