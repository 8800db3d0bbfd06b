// Package catalog загружает каталог стриминговых платформ из удалённого
// статического JSON-фида. Каталог загружается один раз за сессию; его
// недоступность не фатальна — вызывающая сторона деградирует к сохранённым
// ценам подписок.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sandropimentel/streamtrack/internal/models"
)

// ErrFeedUnavailable сигнализирует, что фид каталога недоступен или повреждён.
// Вызывающая сторона продолжает работу с пустым каталогом.
var ErrFeedUnavailable = errors.New("catalog feed unavailable")

// Client — HTTP-клиент фида каталога.
type Client struct {
	feedURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для заданного URL фида.
func NewClient(feedURL string) *Client {
	return &Client{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch загружает и декодирует каталог платформ.
func (c *Client) Fetch(ctx context.Context) ([]models.CatalogEntry, error) {
	const op = "catalog.Fetch"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: unexpected status %s", op, ErrFeedUnavailable, resp.Status)
	}

	var entries []models.CatalogEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrFeedUnavailable, err)
	}
	return entries, nil
}
