// Package scheduler собирает приложение планировщика напоминаний о продлениях.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/sandropimentel/streamtrack/internal/config"
	"github.com/sandropimentel/streamtrack/internal/lib/rabbitmq"
	reminderservice "github.com/sandropimentel/streamtrack/internal/services/reminder"
	"github.com/sandropimentel/streamtrack/internal/storage/repository"
)

// App представляет приложение планировщика.
type App struct {
	reminderService *reminderservice.SchedulerService
	conn            *amqp.Connection
	ch              *amqp.Channel
	logger          *slog.Logger
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения планировщика.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitConnection, 5, 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetReminderQueues())
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(db); err != nil {
		closeResources(ch, conn, logger)
		return nil, err
	}

	return &App{
		reminderService: reminderservice.NewSchedulerService(db, logger),
		conn:            conn,
		ch:              ch,
		logger:          logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", "error", err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", "error", err)
		}
	}
}

// Run запускает планировщик до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	go a.reminderService.Run(ctx, a.ch)

	<-ctx.Done()

	a.logger.Info("shutting down reminder scheduler")
	closeResources(a.ch, a.conn, a.logger)
	return nil
}
