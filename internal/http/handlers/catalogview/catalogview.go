// Package catalogview реализует HTTP-обработчик чтения каталога платформ.
package catalogview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/sandropimentel/streamtrack/internal/catalog"
	"github.com/sandropimentel/streamtrack/internal/http/response"
	"github.com/sandropimentel/streamtrack/internal/lib/sl"
	"github.com/sandropimentel/streamtrack/internal/models"
)

// Handler управляет HTTP-запросами на чтение каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс получения каталога платформ.
type Service interface {
	Catalog(ctx context.Context) ([]models.CatalogEntry, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Каталог платформ
// @Description Возвращает каталог платформ с тарифами и актуальными ценами.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} response.Response "Каталог платформ"
// @Failure 503 {object} response.ErrorResponse "Фид каталога недоступен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /catalog [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalogview"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	entries, err := h.service.Catalog(r.Context())
	if err != nil {
		if errors.Is(err, catalog.ErrFeedUnavailable) {
			log.Error("catalog feed unavailable", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("catalog feed unavailable"))
			return
		}
		log.Error("failed to fetch catalog", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not fetch catalog"))
		return
	}

	log.Info("catalog fetched", slog.Int("platforms", len(entries)))
	render.JSON(w, r, response.OKWithData(entries))
}
