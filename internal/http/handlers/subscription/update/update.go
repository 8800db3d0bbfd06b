// Package update реализует HTTP-обработчик правки подписки.
//
// Правка заменяет подписку на платформу целиком: частичного обновления
// и истории изменений нет.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/sandropimentel/streamtrack/internal/http/middlewarectx"
	"github.com/sandropimentel/streamtrack/internal/http/response"
	"github.com/sandropimentel/streamtrack/internal/lib/sl"
	"github.com/sandropimentel/streamtrack/internal/models"
	subservice "github.com/sandropimentel/streamtrack/internal/services/subscription"
)

// Handler управляет HTTP-запросами на правку подписок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики правки подписки.
type Service interface {
	Update(ctx context.Context, username, platform string, req models.DummySubscription) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить подписку
// @Description Заменяет подписку на платформу целиком новыми данными.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param platform path string true "Платформа"
// @Param request body models.DummySubscription true "Новые данные подписки"
// @Success 200 {object} response.Response "Подписка обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/{platform} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	platform := chi.URLParam(r, "platform")
	if platform == "" {
		log.Error("missing platform url param")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing platform"))
		return
	}

	var req models.DummySubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Update(r.Context(), username, platform, req); err != nil {
		switch {
		case errors.Is(err, subservice.ErrSubscriptionNotFound):
			log.Error("subscription not found", slog.String("platform", platform))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription not found"))
		case errors.Is(err, subservice.ErrInvalidDueDate):
			log.Error("invalid last due date", slog.String("date", req.LastDueDate))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid last due date, expected format 02-01-2006"))
		case errors.Is(err, subservice.ErrDueDateInFuture):
			log.Error("last due date in future", slog.String("platform", platform))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("last due date must not be later than today"))
		default:
			log.Error("failed to update subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update subscription"))
		}
		return
	}

	log.Info("subscription updated", slog.String("platform", platform))
	render.JSON(w, r, response.OK())
}
