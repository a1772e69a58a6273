// Package response содержит вспомогательные типы и функции для формирования
// JSON‑ответов HTTP‑обработчиков в формате публичного контракта API:
// успешные ответы с полями success/message/id и ошибки с полем error.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// SuccessResponse описывает структуру успешного JSON-ответа.
// Поле ID присутствует только в ответе на создание подписки.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int    `json:"id,omitempty"`
}

// ErrorResponse описывает структуру JSON-ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error" example:"Nombre y email son requeridos"`
}

// OK возвращает успешный ответ с сообщением.
func OK(message string) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Message: message,
	}
}

// Created возвращает успешный ответ на создание с ID новой записи.
func Created(message string, id int) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Message: message,
		ID:      id,
	}
}

// Error возвращает ответ с переданным сообщением об ошибке.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Error: msg,
	}
}

// ValidationError формирует ответ об ошибке на основе ошибок валидации.
// Отсутствующие обязательные поля сворачиваются в одно сообщение,
// остальные нарушения перечисляются по полям.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			return ErrorResponse{Error: "Nombre y email son requeridos"}
		case "email":
			errsMsgs = append(errsMsgs, "Email no válido")
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("campo %s no es válido", err.Field()))
		}
	}
	return ErrorResponse{
		Error: strings.Join(errsMsgs, ", "),
	}
}
