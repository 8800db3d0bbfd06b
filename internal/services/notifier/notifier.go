// Package services доставляет напоминания о продлениях до пользователя:
// принятое из очереди напоминание складывается в список уведомлений,
// который мобильный клиент забирает при следующем входе.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sandropimentel/streamtrack/internal/models"
)

const notificationKeyPrefix = "notifications:"

// NotifierRepository определяет методы для работы со списками уведомлений.
type NotifierRepository interface {
	ReadList(ctx context.Context, key string, dest any) error
	WriteList(ctx context.Context, key string, value any) error
}

// NotifierService складывает напоминания в списки уведомлений пользователей.
type NotifierService struct {
	repo NotifierRepository
	log  *slog.Logger
}

// NewNotifierService создает новый экземпляр NotifierService.
func NewNotifierService(repo NotifierRepository, log *slog.Logger) *NotifierService {
	return &NotifierService{
		repo: repo,
		log:  log,
	}
}

// NotificationKey возвращает ключ хранилища для списка уведомлений пользователя.
func NotificationKey(username string) string {
	return notificationKeyPrefix + username
}

// Pending возвращает накопленные уведомления пользователя и очищает список.
// Клиент забирает уведомления один раз, повторный запрос вернёт пустой список.
func (s *NotifierService) Pending(ctx context.Context, username string) ([]models.ReminderInfo, error) {
	const op = "services.notifier.Pending"

	key := NotificationKey(username)

	var pending []models.ReminderInfo
	if err := s.repo.ReadList(ctx, key, &pending); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(pending) == 0 {
		return nil, nil
	}
	if err := s.repo.WriteList(ctx, key, []models.ReminderInfo{}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return pending, nil
}

// Handler возвращает обработчик сообщений очереди напоминаний.
func (s *NotifierService) Handler(ctx context.Context) func([]byte) error {
	return func(body []byte) error {
		return s.storeReminder(ctx, body)
	}
}

func (s *NotifierService) storeReminder(ctx context.Context, body []byte) error {
	const op = "services.notifier.storeReminder"

	var reminder models.ReminderInfo
	if err := json.Unmarshal(body, &reminder); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	key := NotificationKey(reminder.Username)

	var pending []models.ReminderInfo
	if err := s.repo.ReadList(ctx, key, &pending); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	pending = append(pending, reminder)
	if err := s.repo.WriteList(ctx, key, pending); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("stored renewal reminder",
		slog.String("username", reminder.Username),
		slog.String("platform", reminder.Platform))
	return nil
}
