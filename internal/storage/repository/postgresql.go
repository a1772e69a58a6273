// Package repository реализует хранилище данных на основе PostgreSQL
// для управления подписками на рассылку. Предоставляет методы
// создания, чтения, обновления и удаления записей.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Слой HTTP транслирует их в статусы 404 и 409,
// все прочие ошибки базы считаются StorageError и дают 500.
var (
	// ErrNotFound означает, что запись с указанным ID не существует.
	ErrNotFound = errors.New("subscription not found")
	// ErrDuplicateEmail означает нарушение уникальности email.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с подписками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'suscripciones'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table suscripciones missing or query error: %w", err)
	}
	return nil
}
