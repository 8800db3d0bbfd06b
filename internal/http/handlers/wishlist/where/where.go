// Package where реализует HTTP-обработчик проверки "где смотреть".
//
// Для каждого тайтла списка желаемого возвращается, на каких платформах он
// идёт и покрыт ли хотя бы одной подпиской пользователя.
package where

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

// Handler управляет HTTP-запросами на проверку доступности тайтлов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проверки доступности.
type Service interface {
	WhereToWatch(ctx context.Context, username string) ([]models.TitleAvailability, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Где смотреть тайтлы из списка желаемого
// @Description Возвращает для каждого тайтла платформы показа с отметкой подписки пользователя.
// @Tags Wishlist
// @Produce  json
// @Success 200 {object} response.Response "Доступность тайтлов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /wishlist/availability [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wishlist.where"
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

	results, err := h.service.WhereToWatch(r.Context(), username)
	if err != nil {
		log.Error("failed to check availability", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check availability"))
		return
	}

	log.Info("availability checked", slog.Int("count", len(results)))
	render.JSON(w, r, response.OKWithData(results))
}
