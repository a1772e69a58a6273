// Package create реализует HTTP-обработчик для создания новых подписок на рассылку.
//
// Handler принимает JSON-запрос с именем и email, валидирует их с учётом
// настроенного уровня строгости, вызывает бизнес-логику создания подписки
// и возвращает ID созданной записи в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/tiendacafe/subscription-service/internal/config"
	"github.com/tiendacafe/subscription-service/internal/http/response"
	"github.com/tiendacafe/subscription-service/internal/lib/sl"
	"github.com/tiendacafe/subscription-service/internal/models"
	"github.com/tiendacafe/subscription-service/internal/storage/repository"
)

// Handler управляет HTTP-запросами на создание новых подписок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания подписок
	validate *validator.Validate // Валидатор структуры входящих данных
	strict   bool                // Полная проверка формата email вместо поиска @
}

// Service описывает интерфейс бизнес-логики создания подписки.
type Service interface {
	Create(ctx context.Context, req models.DummySubscription) (int, error)
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
// @Summary Crear una nueva suscripción
// @Description Registra un nombre y un email en la lista de correo. Devuelve el ID de la nueva suscripción.
// @Tags Suscripciones
// @Accept  json
// @Produce  json
// @Param request body models.DummySubscription true "Datos de la nueva suscripción"
// @Success 201 {object} response.SuccessResponse "Suscripción creada"
// @Failure 400 {object} response.ErrorResponse "Datos inválidos"
// @Failure 409 {object} response.ErrorResponse "Email ya registrado"
// @Failure 500 {object} response.ErrorResponse "Error de base de datos"
// @Router /api/suscripciones [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			log.Info("duplicate email", slog.String("email", req.Email))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("Este email ya está registrado"))
			return
		}
		log.Error("failed to create subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Error al guardar en la base de datos"))
		return
	}

	log.Info("success to create subscription", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.Created("¡Suscripción exitosa! Gracias por registrarte.", id))
}

// emailValid проверяет формат email согласно уровню строгости.
func (h *Handler) emailValid(email string) bool {
	if h.strict {
		return h.validate.Var(email, "email") == nil
	}
	return strings.Contains(email, "@")
}
