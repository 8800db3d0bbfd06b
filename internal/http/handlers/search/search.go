// Package search реализует HTTP-обработчик поиска тайтлов во внешнем API.
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/sandropimentel/streamtrack/internal/http/response"
	"github.com/sandropimentel/streamtrack/internal/lib/sl"
	"github.com/sandropimentel/streamtrack/internal/models"
)

// Handler управляет HTTP-запросами на поиск тайтлов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска тайтлов.
type Service interface {
	Search(ctx context.Context, query string) ([]models.Title, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поиск тайтлов
// @Description Ищет тайтлы во внешнем API по свободному тексту.
// @Tags Search
// @Produce  json
// @Param q query string true "Поисковый запрос"
// @Success 200 {object} response.Response "Кандидаты поиска"
// @Failure 400 {object} response.ErrorResponse "Пустой запрос"
// @Failure 500 {object} response.ErrorResponse "Внешний API недоступен"
// @Router /search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.search"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query().Get("q")
	if query == "" {
		log.Error("missing search query")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing search query"))
		return
	}

	titles, err := h.service.Search(r.Context(), query)
	if err != nil {
		log.Error("failed to search titles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not search titles"))
		return
	}

	log.Info("titles found", slog.String("query", query), slog.Int("count", len(titles)))
	render.JSON(w, r, response.OKWithData(titles))
}
