package update

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tiendacafe/subscription-service/internal/config"
	"github.com/tiendacafe/subscription-service/internal/models"
	"github.com/tiendacafe/subscription-service/internal/storage/repository"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id int, req models.DummySubscription) error {
	args := m.Called(ctx, id, req)
	return args.Error(0)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name            string
		url             string
		requestBody     interface{}
		validationLevel string
		setupMock       func(*MockService)
		expectedStatus  int
		expectedBody    string
	}{
		{
			name:            "успешное обновление подписки",
			url:             "/api/suscripciones/123",
			requestBody:     models.DummySubscription{Nombre: "Ana Actualizada", Email: "ana2@x.com"},
			validationLevel: config.ValidationStrict,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 123, models.DummySubscription{Nombre: "Ana Actualizada", Email: "ana2@x.com"}).
					Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"message":"Suscripción actualizada correctamente"}`,
		},
		{
			name:            "некорректный JSON",
			url:             "/api/suscripciones/123",
			requestBody:     "not a json",
			validationLevel: config.ValidationStrict,
			setupMock:       func(_ *MockService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedBody:    `{"error":"Nombre y email son requeridos"}`,
		},
		{
			name:            "пустые поля",
			url:             "/api/suscripciones/123",
			requestBody:     models.DummySubscription{Nombre: "", Email: ""},
			validationLevel: config.ValidationStrict,
			setupMock:       func(_ *MockService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedBody:    `{"error":"Nombre y email son requeridos"}`,
		},
		{
			name:            "некорректный формат email",
			url:             "/api/suscripciones/123",
			requestBody:     models.DummySubscription{Nombre: "Ana", Email: "bad-email"},
			validationLevel: config.ValidationStrict,
			setupMock:       func(_ *MockService) {},
			expectedStatus:  http.StatusBadRequest,
			expectedBody:    `{"error":"Email no válido"}`,
		},
		{
			name:            "подписка не найдена",
			url:             "/api/suscripciones/9999",
			requestBody:     models.DummySubscription{Nombre: "Ana", Email: "ana@x.com"},
			validationLevel: config.ValidationStrict,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 9999, mock.AnythingOfType("models.DummySubscription")).
					Return(repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Suscripción no encontrada"}`,
		},
		{
			name:            "email занят другой записью",
			url:             "/api/suscripciones/123",
			requestBody:     models.DummySubscription{Nombre: "Ana", Email: "bob@x.com"},
			validationLevel: config.ValidationStrict,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 123, mock.AnythingOfType("models.DummySubscription")).
					Return(repository.ErrDuplicateEmail)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Este email ya está en uso"}`,
		},
		{
			name:            "нечисловой id в url",
			url:             "/api/suscripciones/abc",
			requestBody:     models.DummySubscription{Nombre: "Ana", Email: "ana@x.com"},
			validationLevel: config.ValidationStrict,
			setupMock:       func(_ *MockService) {},
			expectedStatus:  http.StatusNotFound,
			expectedBody:    `{"error":"Suscripción no encontrada"}`,
		},
		{
			name:            "ошибка сервиса",
			url:             "/api/suscripciones/123",
			requestBody:     models.DummySubscription{Nombre: "Ana", Email: "ana@x.com"},
			validationLevel: config.ValidationStrict,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 123, mock.AnythingOfType("models.DummySubscription")).
					Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Error al actualizar"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, tt.validationLevel)

			router := chi.NewRouter()
			router.Put("/api/suscripciones/{id}", handler.ServeHTTP)

			var body []byte
			switch v := tt.requestBody.(type) {
			case string:
				body = []byte(v)
			default:
				var err error
				body, err = json.Marshal(v)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPut, tt.url, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
