// Потребитель очереди напоминаний: складывает напоминания о продлениях
// в списки уведомлений пользователей.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandropimentel/streamtrack/internal/app/notifier"
	"github.com/sandropimentel/streamtrack/internal/config"
	"github.com/sandropimentel/streamtrack/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("starting reminder notifier", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := notifier.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init notifier", sl.Err(err))
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("notifier stopped with error", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("notifier stopped")
}
