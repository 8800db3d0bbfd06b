// Package streamtrack собирает HTTP-приложение сервиса: хранилище, кеш,
// внешние клиенты, сервисы и маршруты.
package streamtrack

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/sandropimentel/streamtrack/internal/cache"
	"github.com/sandropimentel/streamtrack/internal/catalog"
	"github.com/sandropimentel/streamtrack/internal/config"
	"github.com/sandropimentel/streamtrack/internal/lib/jwt"
	"github.com/sandropimentel/streamtrack/internal/migrations"
	authservice "github.com/sandropimentel/streamtrack/internal/services/auth"
	notifierservice "github.com/sandropimentel/streamtrack/internal/services/notifier"
	subservice "github.com/sandropimentel/streamtrack/internal/services/subscription"
	wishservice "github.com/sandropimentel/streamtrack/internal/services/wishlist"
	"github.com/sandropimentel/streamtrack/internal/storage/repository"
	"github.com/sandropimentel/streamtrack/internal/tmdb"
)

// App — HTTP-приложение сервиса.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New создаёт приложение: подключает хранилище, гоняет миграции,
// инициализирует кеш, клиентов и сервисы, собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	catalogClient := catalog.NewClient(cfg.FeedURL)
	titleClient := tmdb.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Region)

	authService := authservice.NewAuthService(db, jwtMaker, logger)
	subscriptionService := subservice.NewSubscriptionService(db, cacheRedis, catalogClient, cfg.FeedTTL, logger)
	wishlistService := wishservice.NewWishlistService(db, cacheRedis, titleClient, subscriptionService, logger)
	notifierService := notifierservice.NewNotifierService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, authService, subscriptionService, wishlistService, notifierService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
