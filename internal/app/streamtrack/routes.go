// Package streamtrack предоставляет маршруты для основного приложения.
package streamtrack

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sandropimentel/streamtrack/internal/http/handlers/auth/login"
	"github.com/sandropimentel/streamtrack/internal/http/handlers/auth/register"
	"github.com/sandropimentel/streamtrack/internal/http/handlers/catalogview"
	"github.com/sandropimentel/streamtrack/internal/http/handlers/health"
	"github.com/sandropimentel/streamtrack/internal/http/handlers/notifications"
	"github.com/sandropimentel/streamtrack/internal/http/handlers/search"
	subcreate "github.com/sandropimentel/streamtrack/internal/http/handlers/subscription/create"
	sublist "github.com/sandropimentel/streamtrack/internal/http/handlers/subscription/list"
	submonth "github.com/sandropimentel/streamtrack/internal/http/handlers/subscription/month"
	subremove "github.com/sandropimentel/streamtrack/internal/http/handlers/subscription/remove"
	subupdate "github.com/sandropimentel/streamtrack/internal/http/handlers/subscription/update"
	wishadd "github.com/sandropimentel/streamtrack/internal/http/handlers/wishlist/add"
	wishlist "github.com/sandropimentel/streamtrack/internal/http/handlers/wishlist/list"
	wishremove "github.com/sandropimentel/streamtrack/internal/http/handlers/wishlist/remove"
	wishwhere "github.com/sandropimentel/streamtrack/internal/http/handlers/wishlist/where"
	"github.com/sandropimentel/streamtrack/internal/http/middlewarectx"
	"github.com/sandropimentel/streamtrack/internal/lib/jwt"
	authservice "github.com/sandropimentel/streamtrack/internal/services/auth"
	notifierservice "github.com/sandropimentel/streamtrack/internal/services/notifier"
	subservice "github.com/sandropimentel/streamtrack/internal/services/subscription"
	wishservice "github.com/sandropimentel/streamtrack/internal/services/wishlist"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.AuthService,
	subscriptionService *subservice.SubscriptionService,
	wishlistService *wishservice.WishlistService,
	notifierService *notifierservice.NotifierService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/subscriptions", sublist.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions", subcreate.New(logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{platform}", subupdate.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{platform}", subremove.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/month/{key}", submonth.New(logger, subscriptionService).ServeHTTP)

			r.Get("/catalog", catalogview.New(logger, subscriptionService).ServeHTTP)
			r.Get("/search", search.New(logger, wishlistService).ServeHTTP)

			r.Get("/wishlist", wishlist.New(logger, wishlistService).ServeHTTP)
			r.Post("/wishlist", wishadd.New(logger, wishlistService).ServeHTTP)
			r.Delete("/wishlist/{id}", wishremove.New(logger, wishlistService).ServeHTTP)
			r.Get("/wishlist/availability", wishwhere.New(logger, wishlistService).ServeHTTP)

			r.Get("/notifications", notifications.New(logger, notifierService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
