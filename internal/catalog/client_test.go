package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	feed := `[
		{
			"name": "Netflix",
			"plans": [
				{"name": "Standard", "price": 15.49, "old_price": 13.49, "price_change_date": "2024-04-01T00:00:00Z"},
				{"name": "Premium", "price": 19.99}
			]
		},
		{
			"name": "Disney+",
			"plans": [{"name": "Standard", "price": 11.99}]
		}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	entries, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Netflix", entries[0].Name)
	require.Len(t, entries[0].Plans, 2)

	standard, ok := entries[0].FindPlan("Standard")
	require.True(t, ok)
	assert.InDelta(t, 15.49, standard.Price, 0.001)
	require.NotNil(t, standard.OldPrice)
	assert.InDelta(t, 13.49, *standard.OldPrice, 0.001)
	require.NotNil(t, standard.PriceChangeDate)

	premium, ok := entries[0].FindPlan("Premium")
	require.True(t, ok)
	assert.Nil(t, premium.OldPrice)
	assert.Nil(t, premium.PriceChangeDate)
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Fetch(context.Background())
	require.ErrorIs(t, err, ErrFeedUnavailable)
}

func TestFetch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Fetch(context.Background())
	require.ErrorIs(t, err, ErrFeedUnavailable)
}

func TestFetch_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/abosData.json")
	_, err := client.Fetch(context.Background())
	require.ErrorIs(t, err, ErrFeedUnavailable)
}
