// Package read реализует HTTP-обработчик для получения конкретной подписки по ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/tiendacafe/subscription-service/internal/http/response"
	"github.com/tiendacafe/subscription-service/internal/lib/sl"
	"github.com/tiendacafe/subscription-service/internal/models"
	"github.com/tiendacafe/subscription-service/internal/storage/repository"
)

// Handler обрабатывает запросы на получение подписки по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения подписки.
type Service interface {
	Read(ctx context.Context, id int) (*models.Subscription, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Obtener una suscripción
// @Description Devuelve la suscripción con el ID indicado.
// @Tags Suscripciones
// @Produce  json
// @Param id path int true "ID de la suscripción"
// @Success 200 {object} models.Subscription "Suscripción encontrada"
// @Failure 404 {object} response.ErrorResponse "Suscripción no encontrada"
// @Failure 500 {object} response.ErrorResponse "Error de base de datos"
// @Router /api/suscripciones/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Suscripción no encontrada"))
		return
	}

	res, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("subscription not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Suscripción no encontrada"))
			return
		}
		log.Error("failed to read subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error al obtener suscripción"))
		return
	}

	log.Info("success to read subscription", slog.Int("id", id))
	render.JSON(w, r, res)
}
