// Package services находит подписки, продление которых наступает завтра,
// и публикует напоминания в очередь.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/streadway/amqp"

	"github.com/sandropimentel/streamtrack/internal/lib/calendar"
	"github.com/sandropimentel/streamtrack/internal/lib/rabbitmq"
	"github.com/sandropimentel/streamtrack/internal/lib/sl"
	"github.com/sandropimentel/streamtrack/internal/models"
)

const subscriptionKeyPrefix = "abos:"

// ReminderRepository определяет методы для обхода списков подписок в хранилище.
type ReminderRepository interface {
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	ReadList(ctx context.Context, key string, dest any) error
}

// SchedulerService обходит подписки всех пользователей и собирает
// продления, наступающие завтра.
type SchedulerService struct {
	repo ReminderRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo ReminderRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindRenewalsDueTomorrow возвращает напоминания о продлениях, которые
// наступят завтра. Учитываются только подписки с автопродлением: без него
// следующее списание не проецируется.
func (s *SchedulerService) FindRenewalsDueTomorrow(ctx context.Context, now time.Time) ([]models.ReminderInfo, error) {
	const op = "services.reminder.FindRenewalsDueTomorrow"

	keys, err := s.repo.ListKeys(ctx, subscriptionKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tomorrow := now.AddDate(0, 0, 1)
	var reminders []models.ReminderInfo
	for _, key := range keys {
		username := strings.TrimPrefix(key, subscriptionKeyPrefix)

		var subs []models.Subscription
		if err := s.repo.ReadList(ctx, key, &subs); err != nil {
			s.log.Error("failed to read subscription list",
				slog.String("key", key), sl.Err(err))
			continue
		}
		for _, sub := range subs {
			if !sub.AutoRenew {
				continue
			}
			nextDue := calendar.ShiftMonths(sub.LastDueDate, 1)
			if sameDay(nextDue, tomorrow) {
				reminders = append(reminders, models.ReminderInfo{
					Username: username,
					Platform: sub.Platform,
					Plan:     sub.Plan,
					DueDate:  nextDue,
					Price:    sub.Price,
				})
			}
		}
	}
	return reminders, nil
}

// Run запускает периодический обход подписок и публикацию напоминаний.
// Первый проход выполняется сразу, затем раз в 12 часов до отмены контекста.
func (s *SchedulerService) Run(ctx context.Context, channel *amqp.Channel) {
	s.publishDueTomorrow(ctx, channel)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.publishDueTomorrow(ctx, channel)
		}
	}
}

func (s *SchedulerService) publishDueTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting scan for renewals due tomorrow")

	reminders, err := s.FindRenewalsDueTomorrow(ctx, time.Now())
	if err != nil {
		s.log.Error("failed to find renewals", sl.Err(err))
		return
	}
	if len(reminders) == 0 {
		s.log.Info("no renewals due tomorrow")
		return
	}
	s.log.Info("found renewals due tomorrow", slog.Int("count", len(reminders)))

	for _, reminder := range reminders {
		err = rabbitmq.PublishMessage(channel, rabbitmq.RemindersExchange, "renewal", reminder)
		if err != nil {
			s.log.Error("failed to publish reminder", sl.Err(err))
		}
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
