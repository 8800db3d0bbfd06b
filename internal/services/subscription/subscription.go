// Package services содержит бизнес-логику управления списком подписок
// пользователя и построения месячной витрины с применёнными ценами.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sandropimentel/streamtrack/internal/lib/calendar"
	"github.com/sandropimentel/streamtrack/internal/lib/sl"
	"github.com/sandropimentel/streamtrack/internal/models"
	"github.com/sandropimentel/streamtrack/internal/pricing"
	"github.com/sandropimentel/streamtrack/internal/visibility"
)

// ErrSubscriptionExists возвращается при попытке добавить подписку
// на платформу, которая уже есть в списке пользователя.
var ErrSubscriptionExists = errors.New("subscription for this platform already exists")

// ErrSubscriptionNotFound возвращается, когда подписка на платформу
// отсутствует в списке пользователя.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// ErrInvalidDueDate возвращается, когда дата последнего списания не парсится.
var ErrInvalidDueDate = errors.New("invalid last due date, expected format 02-01-2006")

// ErrDueDateInFuture возвращается, когда дата последнего списания позже сегодня.
var ErrDueDateInFuture = errors.New("last due date must not be later than today")

// ErrInvalidMonthKey возвращается при некорректном ключе отображаемого месяца.
var ErrInvalidMonthKey = errors.New("invalid month key")

// SubscriptionRepository определяет методы для работы со списками в хранилище.
// Список подписок пользователя читается и пишется целиком, одним значением.
type SubscriptionRepository interface {
	// ReadList читает список по ключу; отсутствие ключа — пустой список.
	ReadList(ctx context.Context, key string, dest any) error
	// WriteList перезаписывает список по ключу целиком.
	WriteList(ctx context.Context, key string, value any) error
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

// CatalogProvider отдаёт каталог платформ с актуальными ценами тарифов.
type CatalogProvider interface {
	Fetch(ctx context.Context) ([]models.CatalogEntry, error)
}

// SubscriptionService реализует бизнес-логику работы со списком подписок.
type SubscriptionService struct {
	repo    SubscriptionRepository
	cache   Cache
	catalog CatalogProvider
	feedTTL time.Duration
	log     *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, catalog CatalogProvider, feedTTL time.Duration, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:    repo,
		cache:   cache,
		catalog: catalog,
		feedTTL: feedTTL,
		log:     log,
	}
}

// ListKey возвращает ключ хранилища для списка подписок пользователя.
func ListKey(username string) string {
	return "abos:" + username
}

const catalogCacheKey = "catalog:feed"

// List возвращает список подписок пользователя, используя кеш или репозиторий.
func (s *SubscriptionService) List(ctx context.Context, username string) ([]models.Subscription, error) {
	const op = "services.subscription.List"

	key := ListKey(username)

	var subs []models.Subscription
	found, err := s.cache.Get(key, &subs)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return subs, nil
	}

	if err := s.repo.ReadList(ctx, key, &subs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(key, subs, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription list", slog.String("key", key), sl.Err(err))
	}
	return subs, nil
}

// Add добавляет новую подписку в список пользователя.
// Платформа уникальна в пределах списка, дубликат отклоняется.
func (s *SubscriptionService) Add(ctx context.Context, username string, req models.DummySubscription) error {
	const op = "services.subscription.Add"

	sub, err := subscriptionFromRequest(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subs, err := s.List(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, existing := range subs {
		if strings.EqualFold(existing.Platform, sub.Platform) {
			return fmt.Errorf("%s: %w", op, ErrSubscriptionExists)
		}
	}

	subs = append(subs, sub)
	if err := s.writeList(ctx, username, subs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("added subscription",
		slog.String("username", username),
		slog.String("platform", sub.Platform))
	return nil
}

// Update заменяет подписку на платформу целиком новыми данными.
// Частичного обновления и истории изменений нет.
func (s *SubscriptionService) Update(ctx context.Context, username, platform string, req models.DummySubscription) error {
	const op = "services.subscription.Update"

	sub, err := subscriptionFromRequest(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	subs, err := s.List(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	replaced := false
	for i, existing := range subs {
		if strings.EqualFold(existing.Platform, platform) {
			subs[i] = sub
			replaced = true
			break
		}
	}
	if !replaced {
		return fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}

	if err := s.writeList(ctx, username, subs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("updated subscription",
		slog.String("username", username),
		slog.String("platform", platform))
	return nil
}

// Remove удаляет подписку на платформу из списка пользователя.
func (s *SubscriptionService) Remove(ctx context.Context, username, platform string) error {
	const op = "services.subscription.Remove"

	subs, err := s.List(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	kept := make([]models.Subscription, 0, len(subs))
	for _, existing := range subs {
		if !strings.EqualFold(existing.Platform, platform) {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(subs) {
		return fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
	}

	if err := s.writeList(ctx, username, kept); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("removed subscription",
		slog.String("username", username),
		slog.String("platform", platform))
	return nil
}

// MonthView строит витрину подписок для отображаемого месяца: отбор по
// видимости, резолв цен по каталогу, сумма и диапазон доступных месяцев.
// Недоступность каталога не срывает запрос, цены берутся сохранённые.
func (s *SubscriptionService) MonthView(ctx context.Context, username, monthKey string) (*models.MonthView, error) {
	const op = "services.subscription.MonthView"

	if _, err := calendar.ParseMonthKey(monthKey); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrInvalidMonthKey, monthKey)
	}

	subs, err := s.List(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := s.Catalog(ctx)
	if err != nil {
		s.log.Warn("catalog unavailable, falling back to stored prices", sl.Err(err))
		entries = nil
	}

	items := visibility.SelectForMonth(subs, monthKey)
	items, total := pricing.Total(items, entries)

	return &models.MonthView{
		Month:           monthKey,
		Items:           items,
		Total:           total,
		AvailableMonths: visibility.AvailableMonths(subs, time.Now()),
	}, nil
}

// Catalog возвращает каталог платформ, используя кеш с временем жизни фида.
func (s *SubscriptionService) Catalog(ctx context.Context) ([]models.CatalogEntry, error) {
	const op = "services.subscription.Catalog"

	var entries []models.CatalogEntry
	found, err := s.cache.Get(catalogCacheKey, &entries)
	if err != nil {
		s.log.Warn("failed to read catalog cache", sl.Err(err))
	}
	if found {
		return entries, nil
	}

	entries, err = s.catalog.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(catalogCacheKey, entries, s.feedTTL); err != nil {
		s.log.Warn("failed to cache catalog", sl.Err(err))
	}
	return entries, nil
}

func (s *SubscriptionService) writeList(ctx context.Context, username string, subs []models.Subscription) error {
	key := ListKey(username)
	if err := s.repo.WriteList(ctx, key, subs); err != nil {
		return err
	}
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", key), sl.Err(err))
	}
	return nil
}

func subscriptionFromRequest(req models.DummySubscription) (models.Subscription, error) {
	lastDueDate, err := time.Parse("02-01-2006", req.LastDueDate)
	if err != nil {
		return models.Subscription{}, ErrInvalidDueDate
	}
	if lastDueDate.After(time.Now()) {
		return models.Subscription{}, ErrDueDateInFuture
	}

	price := req.Price
	if req.Free {
		price = 0
	}
	return models.Subscription{
		Platform:    req.Platform,
		Plan:        req.Plan,
		Price:       price,
		LastDueDate: lastDueDate,
		AutoRenew:   req.AutoRenew,
		Free:        req.Free,
	}, nil
}
