// Package month реализует HTTP-обработчик месячной витрины подписок.
//
// Для отображаемого месяца возвращаются отобранные подписки с применёнными
// ценами, их сумма и диапазон месяцев, доступных для навигации.
package month

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/sandropimentel/streamtrack/internal/http/middlewarectx"
	"github.com/sandropimentel/streamtrack/internal/http/response"
	"github.com/sandropimentel/streamtrack/internal/lib/sl"
	"github.com/sandropimentel/streamtrack/internal/models"
	subservice "github.com/sandropimentel/streamtrack/internal/services/subscription"
)

// Handler управляет HTTP-запросами на месячную витрину.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики месячной витрины.
type Service interface {
	MonthView(ctx context.Context, username, monthKey string) (*models.MonthView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Витрина подписок за месяц
// @Description Возвращает подписки, видимые в отображаемом месяце, с применёнными ценами и суммой.
// @Tags Subscriptions
// @Produce  json
// @Param key path string true "Месяц в формате 2006-01"
// @Success 200 {object} response.Response "Витрина месяца"
// @Failure 400 {object} response.ErrorResponse "Некорректный ключ месяца"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/month/{key} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.month"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	monthKey := chi.URLParam(r, "key")

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	view, err := h.service.MonthView(r.Context(), username, monthKey)
	if err != nil {
		if errors.Is(err, subservice.ErrInvalidMonthKey) {
			log.Error("invalid month key", slog.String("key", monthKey))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid month key, expected format 2006-01"))
			return
		}
		log.Error("failed to build month view", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build month view"))
		return
	}

	log.Info("month view built",
		slog.String("month", monthKey),
		slog.Int("items", len(view.Items)))
	render.JSON(w, r, response.OKWithData(view))
}
