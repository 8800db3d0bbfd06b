package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTitles_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "dune part two", r.URL.Query().Get("query"))
		w.Write([]byte(`{"results":[
			{"id":693134,"title":"Dune: Part Two","release_date":"2024-02-27","poster_path":"/dune2.jpg"},
			{"id":438631,"title":"Dune","release_date":"","poster_path":""}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "FR")
	titles, err := client.SearchTitles(context.Background(), "dune part two")
	require.NoError(t, err)
	require.Len(t, titles, 2)

	assert.Equal(t, 693134, titles[0].ID)
	assert.Equal(t, "Dune: Part Two", titles[0].Title)
	assert.Equal(t, "2024", titles[0].ReleaseYear)
	assert.Equal(t, "/dune2.jpg", titles[0].PosterPath)
	assert.Empty(t, titles[1].ReleaseYear)
}

func TestSearchTitles_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "FR")
	_, err := client.SearchTitles(context.Background(), "dune")
	require.Error(t, err)
}

func TestWatchProviders_RegionScoped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/693134/watch/providers", r.URL.Path)
		w.Write([]byte(`{"results":{
			"FR":{"flatrate":[{"provider_name":"Netflix"},{"provider_name":"Canal+"}]},
			"US":{"flatrate":[{"provider_name":"Max"}]}
		}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "FR")
	providers, err := client.WatchProviders(context.Background(), 693134)
	require.NoError(t, err)
	assert.Equal(t, []string{"Netflix", "Canal+"}, providers)
}

func TestWatchProviders_MissingRegion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":{"US":{"flatrate":[{"provider_name":"Max"}]}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "DE")
	providers, err := client.WatchProviders(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, providers)
}

func TestWatchProviders_LookupFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "FR")
	_, err := client.WatchProviders(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLookupFailure))
}

func TestWatchProviders_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-key", "FR")
	_, err := client.WatchProviders(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLookupFailure))
}
