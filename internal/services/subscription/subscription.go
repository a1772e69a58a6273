// Package services содержит бизнес-логику для управления подписками на рассылку и кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tiendacafe/subscription-service/internal/lib/sl"
	"github.com/tiendacafe/subscription-service/internal/models"
	"github.com/tiendacafe/subscription-service/internal/rabbitmq"
)

// Ключ кеша для полного списка подписок.
const listCacheKey = "suscripciones:list"

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateEntry добавляет новую подписку и возвращает её ID.
	CreateEntry(ctx context.Context, entry models.DummySubscription) (int, error)
	// ReadEntry возвращает подписку по ID.
	ReadEntry(ctx context.Context, id int) (*models.Subscription, error)
	// UpdateEntry обновляет имя и email подписки по ID.
	UpdateEntry(ctx context.Context, id int, entry models.DummySubscription) error
	// RemoveEntry удаляет подписку по ID.
	RemoveEntry(ctx context.Context, id int) error
	// ListEntrys возвращает все подписки, новые первыми.
	ListEntrys(ctx context.Context) ([]*models.Subscription, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventPublisher публикует события о новых подписках в очередь.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// SubscriptionService реализует бизнес-логику работы с подписками, включая кеширование
// и публикацию событий для приветственных писем. Publisher может быть nil —
// в этом случае события не публикуются.
type SubscriptionService struct {
	repo      SubscriptionRepository
	cache     Cache
	publisher EventPublisher
	log       *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, publisher EventPublisher, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// Create создает новую подписку, сбрасывает кеш списка и публикует событие
// для приветственного письма. Возвращает ID созданной записи.
func (s *SubscriptionService) Create(ctx context.Context, req models.DummySubscription) (int, error) {
	id, err := s.repo.CreateEntry(ctx, req)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new subscription", slog.Int("id", id))

	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate list cache", sl.Err(err))
	}

	if s.publisher != nil {
		message := models.WelcomeMessage{
			EventID: uuid.New().String(),
			ID:      id,
			Nombre:  req.Nombre,
			Email:   req.Email,
		}
		if err := s.publisher.Publish(rabbitmq.WelcomeRoutingKey, message); err != nil {
			s.log.Warn("failed to publish welcome event", sl.Err(err))
		}
	}

	return id, nil
}

// Read возвращает подписку по ID, используя кеш или репозиторий.
func (s *SubscriptionService) Read(ctx context.Context, id int) (*models.Subscription, error) {
	var result *models.Subscription
	cacheKey := fmt.Sprintf("suscripcion:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// Update обновляет имя и email подписки и сбрасывает кеш записи и списка.
func (s *SubscriptionService) Update(ctx context.Context, id int, req models.DummySubscription) error {
	if err := s.repo.UpdateEntry(ctx, id, req); err != nil {
		return err
	}
	s.log.Info("updated subscription in storage", slog.Int("id", id))

	cacheKey := fmt.Sprintf("suscripcion:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate list cache", sl.Err(err))
	}
	return nil
}

// Remove удаляет подписку по ID и сбрасывает кеш записи и списка.
// Кеш сбрасывается только после успешного удаления, иначе параллельное
// чтение может вернуть запись обратно в кеш.
func (s *SubscriptionService) Remove(ctx context.Context, id int) error {
	if err := s.repo.RemoveEntry(ctx, id); err != nil {
		return err
	}
	s.log.Info("removed subscription from storage", slog.Int("id", id))

	cacheKey := fmt.Sprintf("suscripcion:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate list cache", sl.Err(err))
	}
	return nil
}

// List возвращает все подписки, новые первыми, используя кеш или репозиторий.
func (s *SubscriptionService) List(ctx context.Context) ([]*models.Subscription, error) {
	var cached []*models.Subscription
	found, err := s.cache.Get(listCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read list from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	entries, err := s.repo.ListEntrys(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(listCacheKey, entries, time.Minute); err != nil {
		s.log.Warn("failed to cache list", sl.Err(err))
	}
	return entries, nil
}
