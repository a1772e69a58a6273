package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tiendacafe/subscription-service/internal/models"
)

// Код ошибки PostgreSQL для нарушения уникальности.
const uniqueViolationCode = "23505"

// isDuplicateEmail определяет, вызвана ли ошибка нарушением
// уникального ограничения на колонку email.
func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CreateEntry вставляет новую запись подписки и возвращает её ID.
// Поля fecha_registro и activo назначает база данных.
func (s *Storage) CreateEntry(ctx context.Context, entry models.DummySubscription) (int, error) {
	const op = "storage.CreateEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO suscripciones (nombre, email)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, entry.Nombre, entry.Email).Scan(&newID)
	if err != nil {
		if isDuplicateEmail(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadEntry возвращает данные подписки по её ID.
func (s *Storage) ReadEntry(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.ReadEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, nombre, email, fecha_registro, activo
			  FROM suscripciones WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Subscription
	if err := row.Scan(&result.ID, &result.Nombre, &result.Email,
		&result.FechaRegistro, &result.Activo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateEntry обновляет имя и email подписки по её ID.
// Возвращает ErrNotFound, если запись не существует, и ErrDuplicateEmail,
// если новый email уже занят другой записью.
func (s *Storage) UpdateEntry(ctx context.Context, id int, entry models.DummySubscription) error {
	const op = "storage.UpdateEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE suscripciones
			  SET nombre = $1, email = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, entry.Nombre, entry.Email, id)
	if err != nil {
		if isDuplicateEmail(err) {
			return fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// RemoveEntry удаляет подписку по ID. Возвращает ErrNotFound,
// если запись не существует.
func (s *Storage) RemoveEntry(ctx context.Context, id int) error {
	const op = "storage.RemoveEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM suscripciones WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ListEntrys возвращает все подписки, новые записи первыми.
// Пустой список не является ошибкой.
func (s *Storage) ListEntrys(ctx context.Context) ([]*models.Subscription, error) {
	const op = "storage.ListEntrys"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, nombre, email, fecha_registro, activo
			  FROM suscripciones
			  ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.Subscription, 0)
	for rows.Next() {
		var item models.Subscription
		if err := rows.Scan(&item.ID, &item.Nombre, &item.Email,
			&item.FechaRegistro, &item.Activo); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	err = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
