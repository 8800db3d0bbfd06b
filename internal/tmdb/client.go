// Package tmdb — клиент внешнего API поиска фильмов и провайдеров показа.
// Ядро сервиса потребляет от него только кандидатов поиска и список имён
// стриминговых провайдеров по тайтлу; остальное API непрозрачно.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sandropimentel/streamtrack/internal/models"
)

// ErrLookupFailure сигнализирует, что запрос доступности тайтла не удался.
// Такой тайтл деградирует к "провайдеры не сообщены" и не срывает батч.
var ErrLookupFailure = errors.New("title availability lookup failed")

// Client — HTTP-клиент внешнего API.
type Client struct {
	baseURL    string
	apiKey     string
	region     string
	httpClient *http.Client
}

// NewClient создаёт клиент API для заданного региона.
func NewClient(baseURL, apiKey, region string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		region:     region,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Results []struct {
		ID          int    `json:"id"`
		Title       string `json:"title"`
		ReleaseDate string `json:"release_date"`
		PosterPath  string `json:"poster_path"`
	} `json:"results"`
}

type providersResponse struct {
	Results map[string]struct {
		Flatrate []struct {
			ProviderName string `json:"provider_name"`
		} `json:"flatrate"`
	} `json:"results"`
}

// SearchTitles ищет тайтлы по свободному тексту.
func (c *Client) SearchTitles(ctx context.Context, query string) ([]models.Title, error) {
	const op = "tmdb.SearchTitles"

	u := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	var decoded searchResponse
	if err := c.getJSON(ctx, u, &decoded); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	titles := make([]models.Title, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		year := ""
		if len(r.ReleaseDate) >= 4 {
			year = r.ReleaseDate[:4]
		}
		titles = append(titles, models.Title{
			ID:          r.ID,
			Title:       r.Title,
			ReleaseYear: year,
			PosterPath:  r.PosterPath,
		})
	}
	return titles, nil
}

// WatchProviders возвращает имена стриминговых провайдеров тайтла
// для региона клиента. Отсутствие региона в ответе — пустой список.
func (c *Client) WatchProviders(ctx context.Context, titleID int) ([]string, error) {
	const op = "tmdb.WatchProviders"

	u := fmt.Sprintf("%s/movie/%d/watch/providers?api_key=%s",
		c.baseURL, titleID, url.QueryEscape(c.apiKey))

	var decoded providersResponse
	if err := c.getJSON(ctx, u, &decoded); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrLookupFailure, err)
	}

	regional, ok := decoded.Results[c.region]
	if !ok {
		return nil, nil
	}
	var names []string
	for _, p := range regional.Flatrate {
		names = append(names, p.ProviderName)
	}
	return names, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("unexpected status: " + resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
