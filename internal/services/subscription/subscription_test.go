package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tiendacafe/subscription-service/internal/models"
	"github.com/tiendacafe/subscription-service/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateEntry(ctx context.Context, entry models.DummySubscription) (int, error) {
	args := m.Called(ctx, entry)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadEntry(ctx context.Context, id int) (*models.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *RepoMock) UpdateEntry(ctx context.Context, id int, entry models.DummySubscription) error {
	args := m.Called(ctx, id, entry)
	return args.Error(0)
}
func (m *RepoMock) RemoveEntry(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *RepoMock) ListEntrys(ctx context.Context) ([]*models.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreate_Success(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	publisher := new(PublisherMock)

	req := models.DummySubscription{Nombre: "Ana", Email: "ana@x.com"}
	repo.On("CreateEntry", mock.Anything, req).Return(7, nil)
	cache.On("Invalidate", "suscripciones:list").Return(nil)
	publisher.On("Publish", "welcome", mock.MatchedBy(func(msg any) bool {
		welcome, ok := msg.(models.WelcomeMessage)
		return ok && welcome.ID == 7 && welcome.Email == "ana@x.com" && welcome.EventID != ""
	})).Return(nil)

	svc := NewSubscriptionService(repo, cache, publisher, discardLogger())
	id, err := svc.Create(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, 7, id)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreate_DuplicateEmailPassesThrough(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	req := models.DummySubscription{Nombre: "Ana", Email: "ana@x.com"}
	repo.On("CreateEntry", mock.Anything, req).Return(0, repository.ErrDuplicateEmail)

	svc := NewSubscriptionService(repo, cache, nil, discardLogger())
	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything)
}

func TestCreate_NilPublisher(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	req := models.DummySubscription{Nombre: "Ana", Email: "ana@x.com"}
	repo.On("CreateEntry", mock.Anything, req).Return(1, nil)
	cache.On("Invalidate", "suscripciones:list").Return(nil)

	svc := NewSubscriptionService(repo, cache, nil, discardLogger())
	id, err := svc.Create(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestRead_CacheHit(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	cache.On("Get", "suscripcion:3", mock.Anything).Return(true, nil)

	svc := NewSubscriptionService(repo, cache, nil, discardLogger())
	_, err := svc.Read(context.Background(), 3)

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "ReadEntry", mock.Anything, mock.Anything)
}

func TestRead_CacheMiss(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	sub := &models.Subscription{ID: 3, Nombre: "Ana", Email: "ana@x.com", Activo: true}
	cache.On("Get", "suscripcion:3", mock.Anything).Return(false, nil)
	repo.On("ReadEntry", mock.Anything, 3).Return(sub, nil)
	cache.On("Set", "suscripcion:3", sub, time.Hour).Return(nil)

	svc := NewSubscriptionService(repo, cache, nil, discardLogger())
	got, err := svc.Read(context.Background(), 3)

	assert.NoError(t, err)
	assert.Equal(t, sub, got)
	cache.AssertExpectations(t)
}

func TestRead_NotFoundPassesThrough(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	cache.On("Get", "suscripcion:9999", mock.Anything).Return(false, nil)
	repo.On("ReadEntry", mock.Anything, 9999).Return(nil, repository.ErrNotFound)

	svc := NewSubscriptionService(repo, cache, nil, discardLogger())
	_, err := svc.Read(context.Background(), 9999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdate_InvalidatesCaches(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	req := models.DummySubscription{Nombre: "Ana Actualizada", Email: "ana2@x.com"}
	repo.On("UpdateEntry", mock.Anything, 3, req).Return(nil)
	cache.On("Invalidate", "suscripcion:3").Return(nil)
	cache.On("Invalidate", "suscripciones:list").Return(nil)

	svc := NewSubscriptionService(repo, cache, nil, discardLogger())
	err := svc.Update(context.Background(), 3, req)

	assert.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestRemove_InvalidatesCaches(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	repo.On("RemoveEntry", mock.Anything, 3).Return(nil)
	cache.On("Invalidate", "suscripcion:3").Return(nil)
	cache.On("Invalidate", "suscripciones:list").Return(nil)

	svc := NewSubscriptionService(repo, cache, nil, discardLogger())
	err := svc.Remove(context.Background(), 3)

	assert.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestRemove_NotFoundKeepsCache(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	repo.On("RemoveEntry", mock.Anything, 9999).Return(repository.ErrNotFound)

	svc := NewSubscriptionService(repo, cache, nil, discardLogger())
	err := svc.Remove(context.Background(), 9999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	cache.AssertNotCalled(t, "Invalidate", "suscripcion:9999")
	cache.AssertNotCalled(t, "Invalidate", "suscripciones:list")
}

func TestList_CacheMiss(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	entries := []*models.Subscription{
		{ID: 2, Nombre: "Bob", Email: "bob@x.com", Activo: true},
		{ID: 1, Nombre: "Ana", Email: "ana@x.com", Activo: true},
	}
	cache.On("Get", "suscripciones:list", mock.Anything).Return(false, nil)
	repo.On("ListEntrys", mock.Anything).Return(entries, nil)
	cache.On("Set", "suscripciones:list", entries, time.Minute).Return(nil)

	svc := NewSubscriptionService(repo, cache, nil, discardLogger())
	got, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestList_RepoError(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	cache.On("Get", "suscripciones:list", mock.Anything).Return(false, nil)
	repo.On("ListEntrys", mock.Anything).Return(nil, errors.New("db error"))

	svc := NewSubscriptionService(repo, cache, nil, discardLogger())
	_, err := svc.List(context.Background())

	assert.Error(t, err)
}
