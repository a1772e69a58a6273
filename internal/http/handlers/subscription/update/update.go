// Package update реализует HTTP-обработчик для обновления подписки по ID.
//
// Handler принимает JSON-запрос с новыми именем и email, валидирует их
// с учётом настроенного уровня строгости и вызывает бизнес-логику обновления.
// Изменяемы только имя и email, остальные поля записи неизменны.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/tiendacafe/subscription-service/internal/config"
	"github.com/tiendacafe/subscription-service/internal/http/response"
	"github.com/tiendacafe/subscription-service/internal/lib/sl"
	"github.com/tiendacafe/subscription-service/internal/models"
	"github.com/tiendacafe/subscription-service/internal/storage/repository"
)

// Handler управляет HTTP-запросами на обновление подписок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	strict   bool
}

// Service описывает интерфейс бизнес-логики обновления подписки.
type Service interface {
	Update(ctx context.Context, id int, req models.DummySubscription) error
}

// New создает новый Handler с переданными логгером, сервисом и уровнем валидации.
func New(log *slog.Logger, service Service, validationLevel string) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
		strict:   validationLevel == config.ValidationStrict,
	}
}

// ServeHTTP godoc
// @Summary Actualizar una suscripción
// @Description Actualiza el nombre y el email de la suscripción con el ID indicado.
// @Tags Suscripciones
// @Accept  json
// @Produce  json
// @Param id path int true "ID de la suscripción"
// @Param request body models.DummySubscription true "Nuevos datos de la suscripción"
// @Success 200 {object} response.SuccessResponse "Suscripción actualizada"
// @Failure 400 {object} response.ErrorResponse "Datos inválidos"
// @Failure 404 {object} response.ErrorResponse "Suscripción no encontrada"
// @Failure 409 {object} response.ErrorResponse "Email ya en uso"
// @Failure 500 {object} response.ErrorResponse "Error de base de datos"
// @Router /api/suscripciones/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.update"

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

	var req models.DummySubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Nombre y email son requeridos"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	if !h.emailValid(req.Email) {
		log.Error("invalid email format", slog.String("email", req.Email))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Email no válido"))
		return
	}

	if err := h.service.Update(r.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Info("subscription not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Suscripción no encontrada"))
		case errors.Is(err, repository.ErrDuplicateEmail):
			log.Info("duplicate email", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("Este email ya está en uso"))
		default:
			log.Error("failed to update subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Error al actualizar"))
		}
		return
	}

	log.Info("success to update subscription", slog.Int("id", id))
	render.JSON(w, r, response.OK("Suscripción actualizada correctamente"))
}

// emailValid проверяет формат email согласно уровню строгости.
func (h *Handler) emailValid(email string) bool {
	if h.strict {
		return h.validate.Var(email, "email") == nil
	}
	return strings.Contains(email, "@")
}
