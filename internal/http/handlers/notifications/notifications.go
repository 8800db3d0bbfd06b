// Package notifications реализует HTTP-обработчик выдачи накопленных
// уведомлений о продлениях. Список очищается при выдаче.
package notifications

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/sandropimentel/streamtrack/internal/http/middlewarectx"
	"github.com/sandropimentel/streamtrack/internal/http/response"
	"github.com/sandropimentel/streamtrack/internal/lib/sl"
	"github.com/sandropimentel/streamtrack/internal/models"
)

// Handler управляет HTTP-запросами на выдачу уведомлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выдачи накопленных уведомлений.
type Service interface {
	Pending(ctx context.Context, username string) ([]models.ReminderInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Уведомления о продлениях
// @Description Возвращает накопленные уведомления текущего пользователя и очищает их.
// @Tags Notifications
// @Produce  json
// @Success 200 {object} response.Response "Список уведомлений"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notifications [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notifications"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	pending, err := h.service.Pending(r.Context(), username)
	if err != nil {
		log.Error("failed to fetch notifications", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not fetch notifications"))
		return
	}

	log.Info("notifications fetched", slog.Int("count", len(pending)))
	render.JSON(w, r, response.OKWithData(pending))
}
