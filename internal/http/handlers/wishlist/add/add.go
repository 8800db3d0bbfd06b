// Package add реализует HTTP-обработчик добавления тайтла в список желаемого.
package add

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
	wishservice "github.com/sandropimentel/streamtrack/internal/services/wishlist"
)

// Handler управляет HTTP-запросами на добавление тайтлов в список желаемого.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления тайтла.
type Service interface {
	Add(ctx context.Context, username string, title models.Title) error
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
// @Summary Добавить тайтл в список желаемого
// @Description Добавляет тайтл в список желаемого текущего пользователя.
// @Tags Wishlist
// @Accept  json
// @Produce  json
// @Param request body models.Title true "Тайтл"
// @Success 200 {object} response.Response "Тайтл добавлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Тайтл уже в списке"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /wishlist [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wishlist.add"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var title models.Title
	if err := json.NewDecoder(r.Body).Decode(&title); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(title); err != nil {
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

	if err := h.service.Add(r.Context(), username, title); err != nil {
		if errors.Is(err, wishservice.ErrTitleExists) {
			log.Error("title already in wishlist", slog.String("title", title.Title))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("title already in wishlist"))
			return
		}
		log.Error("failed to add title", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add title"))
		return
	}

	log.Info("title added to wishlist", slog.String("title", title.Title))
	render.JSON(w, r, response.OK())
}
