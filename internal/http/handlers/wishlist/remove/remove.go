// Package remove реализует HTTP-обработчик удаления тайтла из списка желаемого.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/sandropimentel/streamtrack/internal/http/middlewarectx"
	"github.com/sandropimentel/streamtrack/internal/http/response"
	"github.com/sandropimentel/streamtrack/internal/lib/sl"
	wishservice "github.com/sandropimentel/streamtrack/internal/services/wishlist"
)

// Handler управляет HTTP-запросами на удаление тайтлов из списка желаемого.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления тайтла.
type Service interface {
	Remove(ctx context.Context, username string, titleID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить тайтл из списка желаемого
// @Description Удаляет тайтл из списка желаемого текущего пользователя.
// @Tags Wishlist
// @Produce  json
// @Param id path int true "Идентификатор тайтла"
// @Success 200 {object} response.Response "Тайтл удалён"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Тайтл не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /wishlist/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wishlist.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	titleID, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Remove(r.Context(), username, titleID); err != nil {
		if errors.Is(err, wishservice.ErrTitleNotFound) {
			log.Error("title not found", slog.Int("title_id", titleID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("title not found"))
			return
		}
		log.Error("failed to remove title", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove title"))
		return
	}

	log.Info("title removed from wishlist", slog.Int("title_id", titleID))
	render.JSON(w, r, response.OK())
}
