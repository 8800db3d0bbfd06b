// Package services содержит бизнес-логику списка желаемого: хранение
// тайтлов и определение, на каких платформах пользователя их можно смотреть.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sandropimentel/streamtrack/internal/lib/sl"
	"github.com/sandropimentel/streamtrack/internal/matcher"
	"github.com/sandropimentel/streamtrack/internal/models"
)

// ErrTitleExists возвращается при попытке добавить тайтл, уже лежащий в списке.
var ErrTitleExists = errors.New("title already in wishlist")

// ErrTitleNotFound возвращается, когда тайтла нет в списке пользователя.
var ErrTitleNotFound = errors.New("title not found in wishlist")

// WishlistRepository определяет методы для работы со списками в хранилище.
type WishlistRepository interface {
	ReadList(ctx context.Context, key string, dest any) error
	WriteList(ctx context.Context, key string, value any) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// TitleProvider отдаёт поиск тайтлов и список стриминговых провайдеров тайтла.
type TitleProvider interface {
	SearchTitles(ctx context.Context, query string) ([]models.Title, error)
	WatchProviders(ctx context.Context, titleID int) ([]string, error)
}

// SubscriptionLister отдаёт список подписок пользователя.
type SubscriptionLister interface {
	List(ctx context.Context, username string) ([]models.Subscription, error)
}

// WishlistService реализует бизнес-логику списка желаемого.
type WishlistService struct {
	repo    WishlistRepository
	cache   Cache
	titles  TitleProvider
	subs    SubscriptionLister
	aliases matcher.AliasTable
	log     *slog.Logger
}

// NewWishlistService создает новый экземпляр WishlistService.
func NewWishlistService(repo WishlistRepository, cache Cache, titles TitleProvider, subs SubscriptionLister, log *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:    repo,
		cache:   cache,
		titles:  titles,
		subs:    subs,
		aliases: matcher.DefaultAliases,
		log:     log,
	}
}

// ListKey возвращает ключ хранилища для списка желаемого пользователя.
func ListKey(username string) string {
	return "wishlist:" + username
}

// List возвращает список желаемого пользователя, используя кеш или репозиторий.
func (s *WishlistService) List(ctx context.Context, username string) ([]models.Title, error) {
	const op = "services.wishlist.List"

	key := ListKey(username)

	var titles []models.Title
	found, err := s.cache.Get(key, &titles)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return titles, nil
	}

	if err := s.repo.ReadList(ctx, key, &titles); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(key, titles, time.Hour); err != nil {
		s.log.Warn("failed to cache wishlist", slog.String("key", key), sl.Err(err))
	}
	return titles, nil
}

// Add добавляет тайтл в список желаемого. Тайтл уникален по идентификатору.
func (s *WishlistService) Add(ctx context.Context, username string, title models.Title) error {
	const op = "services.wishlist.Add"

	titles, err := s.List(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, existing := range titles {
		if existing.ID == title.ID {
			return fmt.Errorf("%s: %w", op, ErrTitleExists)
		}
	}

	titles = append(titles, title)
	if err := s.writeList(ctx, username, titles); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("added title to wishlist",
		slog.String("username", username),
		slog.String("title", title.Title))
	return nil
}

// Remove удаляет тайтл из списка желаемого по идентификатору.
func (s *WishlistService) Remove(ctx context.Context, username string, titleID int) error {
	const op = "services.wishlist.Remove"

	titles, err := s.List(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	kept := make([]models.Title, 0, len(titles))
	for _, existing := range titles {
		if existing.ID != titleID {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(titles) {
		return fmt.Errorf("%s: %w", op, ErrTitleNotFound)
	}

	if err := s.writeList(ctx, username, kept); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("removed title from wishlist",
		slog.String("username", username),
		slog.Int("title_id", titleID))
	return nil
}

// Search ищет тайтлы во внешнем API по свободному тексту.
func (s *WishlistService) Search(ctx context.Context, query string) ([]models.Title, error) {
	const op = "services.wishlist.Search"

	titles, err := s.titles.SearchTitles(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return titles, nil
}

// WhereToWatch определяет для каждого тайтла списка желаемого, покрыт ли он
// хотя бы одной подпиской пользователя. Провайдеры тайтлов запрашиваются
// конкурентно; неудачный запрос деградирует тайтл к пустому списку
// провайдеров и не срывает весь батч. Порядок тайтлов сохраняется.
func (s *WishlistService) WhereToWatch(ctx context.Context, username string) ([]models.TitleAvailability, error) {
	const op = "services.wishlist.WhereToWatch"

	titles, err := s.List(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	subs, err := s.subs.List(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	userPlatforms := make([]string, 0, len(subs))
	for _, sub := range subs {
		userPlatforms = append(userPlatforms, sub.Platform)
	}

	results := make([]models.TitleAvailability, len(titles))
	var wg sync.WaitGroup
	for i, title := range titles {
		wg.Add(1)
		go func(i int, title models.Title) {
			defer wg.Done()

			providers, err := s.titles.WatchProviders(ctx, title.ID)
			if err != nil {
				s.log.Warn("availability lookup failed",
					slog.String("title", title.Title), sl.Err(err))
				providers = nil
			}
			results[i] = matcher.ClassifyTitleAvailability(title.Title, providers, userPlatforms, s.aliases)
		}(i, title)
	}
	wg.Wait()

	return results, nil
}

func (s *WishlistService) writeList(ctx context.Context, username string, titles []models.Title) error {
	key := ListKey(username)
	if err := s.repo.WriteList(ctx, key, titles); err != nil {
		return err
	}
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", key), sl.Err(err))
	}
	return nil
}
