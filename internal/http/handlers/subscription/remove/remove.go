// Package remove реализует HTTP-обработчик для удаления подписки по ID.
// Удаление физическое, мягкого удаления нет.
package remove

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
	"github.com/tiendacafe/subscription-service/internal/storage/repository"
)

// Handler обрабатывает запросы на удаление подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления подписки.
type Service interface {
	Remove(ctx context.Context, id int) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Eliminar una suscripción
// @Description Elimina la suscripción con el ID indicado.
// @Tags Suscripciones
// @Produce  json
// @Param id path int true "ID de la suscripción"
// @Success 200 {object} response.SuccessResponse "Suscripción eliminada"
// @Failure 404 {object} response.ErrorResponse "Suscripción no encontrada"
// @Failure 500 {object} response.ErrorResponse "Error de base de datos"
// @Router /api/suscripciones/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.remove"

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

	if err := h.service.Remove(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("subscription not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Suscripción no encontrada"))
			return
		}
		log.Error("failed to remove subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error al eliminar"))
		return
	}

	log.Info("success to remove subscription", slog.Int("id", id))
	render.JSON(w, r, response.OK("Suscripción eliminada correctamente"))
}
