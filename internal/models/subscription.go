// Package models содержит доменные структуры, описывающие подписку на рассылку,
// а также вспомогательные типы для работы с данными из внешних источников (например, JSON-запросы).
package models

import "time"

// Subscription представляет собой основную модель подписки на рассылку,
// используемую в бизнес-логике и хранилище. Поля ID и FechaRegistro
// назначаются хранилищем при создании и далее не изменяются.
type Subscription struct {
	ID            int       `json:"id"`             // Суррогатный первичный ключ
	Nombre        string    `json:"nombre"`         // Имя подписчика
	Email         string    `json:"email"`          // Email, уникален среди всех подписок
	FechaRegistro time.Time `json:"fecha_registro"` // Дата регистрации, назначается базой
	Activo        bool      `json:"activo"`         // Флаг активности, по умолчанию true
}

// DummySubscription используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Subscription. Формат email
// валидируется отдельно в зависимости от настроенного уровня строгости.
type DummySubscription struct {
	Nombre string `json:"nombre" validate:"required"` // Имя подписчика
	Email  string `json:"email" validate:"required"`  // Email подписчика
}

// WelcomeMessage описывает событие о новой подписке, публикуемое в очередь
// для отправки приветственного письма.
type WelcomeMessage struct {
	EventID string `json:"event_id"`
	ID      int    `json:"id"`
	Nombre  string `json:"nombre"`
	Email   string `json:"email"`
}
