// Package notifier собирает приложение-потребителя очереди напоминаний.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/sandropimentel/streamtrack/internal/config"
	"github.com/sandropimentel/streamtrack/internal/lib/rabbitmq"
	notifierservice "github.com/sandropimentel/streamtrack/internal/services/notifier"
	"github.com/sandropimentel/streamtrack/internal/storage/repository"
)

// App представляет приложение-потребителя напоминаний.
type App struct {
	notifierService *notifierservice.NotifierService
	conn            *amqp.Connection
	ch              *amqp.Channel
	logger          *slog.Logger
}

// New создает новый экземпляр приложения-потребителя.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitConnection, 5, 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetReminderQueues())
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	return &App{
		notifierService: notifierservice.NewNotifierService(db, logger),
		conn:            conn,
		ch:              ch,
		logger:          logger,
	}, nil
}

// Run запускает потребителя очереди напоминаний до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	for _, queue := range rabbitmq.GetReminderQueues() {
		if err := rabbitmq.ConsumeMessages(ctx, a.ch, queue.QueueName, a.notifierService.Handler(ctx)); err != nil {
			return err
		}
		a.logger.Info("consuming reminders", slog.String("queue", queue.QueueName))
	}

	<-ctx.Done()

	a.logger.Info("shutting down reminder notifier")
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", "error", err)
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", "error", err)
	}
	return nil
}
