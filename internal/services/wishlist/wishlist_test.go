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
	"github.com/stretchr/testify/require"

	"github.com/sandropimentel/streamtrack/internal/models"
)

type RepositoryMock struct {
	mock.Mock
}

func (m *RepositoryMock) ReadList(ctx context.Context, key string, dest any) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *RepositoryMock) WriteList(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type TitleProviderMock struct {
	mock.Mock
}

func (m *TitleProviderMock) SearchTitles(ctx context.Context, query string) ([]models.Title, error) {
	args := m.Called(ctx, query)
	titles, _ := args.Get(0).([]models.Title)
	return titles, args.Error(1)
}

func (m *TitleProviderMock) WatchProviders(ctx context.Context, titleID int) ([]string, error) {
	args := m.Called(ctx, titleID)
	providers, _ := args.Get(0).([]string)
	return providers, args.Error(1)
}

type SubscriptionListerMock struct {
	mock.Mock
}

func (m *SubscriptionListerMock) List(ctx context.Context, username string) ([]models.Subscription, error) {
	args := m.Called(ctx, username)
	subs, _ := args.Get(0).([]models.Subscription)
	return subs, args.Error(1)
}

type noopCache struct{}

func (noopCache) Get(_ string, _ any) (bool, error)          { return false, nil }
func (noopCache) Set(_ string, _ any, _ time.Duration) error { return nil }
func (noopCache) Invalidate(_ string) error                  { return nil }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func stubWishlist(repo *RepositoryMock, key string, titles []models.Title) {
	repo.On("ReadList", mock.Anything, key, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*[]models.Title)
			*dest = append([]models.Title(nil), titles...)
		}).Return(nil)
}

func TestAdd_Success(t *testing.T) {
	repo := new(RepositoryMock)
	svc := NewWishlistService(repo, noopCache{}, new(TitleProviderMock), new(SubscriptionListerMock), newNoopLogger())

	stubWishlist(repo, "wishlist:alice", nil)
	repo.On("WriteList", mock.Anything, "wishlist:alice", mock.MatchedBy(func(value any) bool {
		titles, ok := value.([]models.Title)
		return ok && len(titles) == 1 && titles[0].ID == 693134
	})).Return(nil)

	err := svc.Add(context.Background(), "alice", models.Title{ID: 693134, Title: "Dune: Part Two"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAdd_Duplicate(t *testing.T) {
	repo := new(RepositoryMock)
	svc := NewWishlistService(repo, noopCache{}, new(TitleProviderMock), new(SubscriptionListerMock), newNoopLogger())

	stubWishlist(repo, "wishlist:alice", []models.Title{{ID: 693134, Title: "Dune: Part Two"}})

	err := svc.Add(context.Background(), "alice", models.Title{ID: 693134, Title: "Dune: Part Two"})
	require.ErrorIs(t, err, ErrTitleExists)
	repo.AssertNotCalled(t, "WriteList", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemove_NotFound(t *testing.T) {
	repo := new(RepositoryMock)
	svc := NewWishlistService(repo, noopCache{}, new(TitleProviderMock), new(SubscriptionListerMock), newNoopLogger())

	stubWishlist(repo, "wishlist:alice", []models.Title{{ID: 1}})

	err := svc.Remove(context.Background(), "alice", 42)
	require.ErrorIs(t, err, ErrTitleNotFound)
}

func TestWhereToWatch_ClassifiesAgainstSubscriptions(t *testing.T) {
	repo := new(RepositoryMock)
	titles := new(TitleProviderMock)
	subs := new(SubscriptionListerMock)
	svc := NewWishlistService(repo, noopCache{}, titles, subs, newNoopLogger())

	stubWishlist(repo, "wishlist:alice", []models.Title{
		{ID: 1, Title: "Dune: Part Two"},
		{ID: 2, Title: "The Bear"},
		{ID: 3, Title: "Obscure Short"},
	})
	subs.On("List", mock.Anything, "alice").Return([]models.Subscription{
		{Platform: "Netflix"},
		{Platform: "Disney+"},
	}, nil)

	titles.On("WatchProviders", mock.Anything, 1).Return([]string{"Max", "Netflix"}, nil)
	titles.On("WatchProviders", mock.Anything, 2).Return([]string{"Disney Plus"}, nil)
	titles.On("WatchProviders", mock.Anything, 3).Return(nil, nil)

	results, err := svc.WhereToWatch(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Dune: Part Two", results[0].Title)
	assert.True(t, results[0].Available)
	require.Len(t, results[0].PerPlatform, 2)
	assert.False(t, results[0].PerPlatform[0].Subscribed)
	assert.True(t, results[0].PerPlatform[1].Subscribed)

	// "Disney Plus" распознаётся как алиас платформы "Disney+".
	assert.True(t, results[1].Available)
	assert.True(t, results[1].PerPlatform[0].Subscribed)

	// Нет провайдеров: тайтл недоступен нигде.
	assert.False(t, results[2].Available)
	assert.Empty(t, results[2].PerPlatform)
}

func TestWhereToWatch_LookupFailureDegrades(t *testing.T) {
	repo := new(RepositoryMock)
	titles := new(TitleProviderMock)
	subs := new(SubscriptionListerMock)
	svc := NewWishlistService(repo, noopCache{}, titles, subs, newNoopLogger())

	stubWishlist(repo, "wishlist:alice", []models.Title{
		{ID: 1, Title: "Dune: Part Two"},
		{ID: 2, Title: "The Bear"},
	})
	subs.On("List", mock.Anything, "alice").Return([]models.Subscription{{Platform: "Netflix"}}, nil)

	titles.On("WatchProviders", mock.Anything, 1).Return(nil, errors.New("timeout"))
	titles.On("WatchProviders", mock.Anything, 2).Return([]string{"Netflix"}, nil)

	results, err := svc.WhereToWatch(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.False(t, results[0].Available)
	assert.Empty(t, results[0].PerPlatform)
	assert.True(t, results[1].Available)
}

func TestSearch_PropagatesError(t *testing.T) {
	repo := new(RepositoryMock)
	titles := new(TitleProviderMock)
	svc := NewWishlistService(repo, noopCache{}, titles, new(SubscriptionListerMock), newNoopLogger())

	titles.On("SearchTitles", mock.Anything, "dune").Return(nil, errors.New("api down"))

	_, err := svc.Search(context.Background(), "dune")
	require.Error(t, err)
}
