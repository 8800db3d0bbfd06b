// Package create реализует HTTP-обработчик добавления подписки в список пользователя.
//
// Handler принимает JSON-запрос с данными подписки, валидирует их, извлекает имя
// пользователя из контекста и добавляет подписку через сервис бизнес-логики.
// Платформа уникальна в пределах списка, повторное добавление отклоняется.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/sandropimentel/streamtrack/internal/http/middlewarectx"
	"github.com/sandropimentel/streamtrack/internal/http/response"
	"github.com/sandropimentel/streamtrack/internal/lib/sl"
	"github.com/sandropimentel/streamtrack/internal/models"
	subservice "github.com/sandropimentel/streamtrack/internal/services/subscription"
)

// Handler управляет HTTP-запросами на добавление подписок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления подписки.
type Service interface {
	Add(ctx context.Context, username string, req models.DummySubscription) error
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
// @Summary Добавить подписку
// @Description Добавляет подписку в список текущего пользователя. Платформа уникальна в пределах списка.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body models.DummySubscription true "Данные подписки"
// @Success 200 {object} response.Response "Подписка добавлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата списания в будущем"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Подписка на платформу уже есть"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

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

	if err := h.service.Add(r.Context(), username, req); err != nil {
		switch {
		case errors.Is(err, subservice.ErrSubscriptionExists):
			log.Error("subscription already exists", slog.String("platform", req.Platform))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("subscription for this platform already exists"))
		case errors.Is(err, subservice.ErrInvalidDueDate):
			log.Error("invalid last due date", slog.String("date", req.LastDueDate))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid last due date, expected format 02-01-2006"))
		case errors.Is(err, subservice.ErrDueDateInFuture):
			log.Error("last due date in future", slog.String("platform", req.Platform))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("last due date must not be later than today"))
		default:
			log.Error("failed to add subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not add subscription"))
		}
		return
	}

	log.Info("subscription added", slog.String("platform", req.Platform))
	render.JSON(w, r, response.OK())
}
