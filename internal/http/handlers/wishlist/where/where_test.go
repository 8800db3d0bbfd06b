package where_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sandropimentel/streamtrack/internal/http/handlers/wishlist/where"
	"github.com/sandropimentel/streamtrack/internal/http/middlewarectx"
	"github.com/sandropimentel/streamtrack/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) WhereToWatch(ctx context.Context, username string) ([]models.TitleAvailability, error) {
	args := m.Called(ctx, username)
	results, _ := args.Get(0).([]models.TitleAvailability)
	return results, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestWhereHandler_Success(t *testing.T) {
	serviceMock := new(ServiceMock)
	serviceMock.On("WhereToWatch", mock.Anything, "alice").Return([]models.TitleAvailability{
		{
			Title:     "Dune: Part Two",
			Available: true,
			PerPlatform: []models.PlatformAvailability{
				{Name: "Max", Subscribed: false},
				{Name: "Netflix", Subscribed: true},
			},
		},
		{Title: "Obscure Short", Available: false},
	}, nil)

	handler := where.New(newNoopLogger(), serviceMock)

	req := httptest.NewRequest(http.MethodGet, "/wishlist/availability", nil)
	ctx := context.WithValue(req.Context(), middlewarectx.User, "alice")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string                     `json:"status"`
		Data   []models.TitleAvailability `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.True(t, resp.Data[0].Available)
	assert.True(t, resp.Data[0].PerPlatform[1].Subscribed)
	assert.False(t, resp.Data[1].Available)
}

func TestWhereHandler_Unauthorized(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := where.New(newNoopLogger(), serviceMock)

	req := httptest.NewRequest(http.MethodGet, "/wishlist/availability", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	serviceMock.AssertNotCalled(t, "WhereToWatch", mock.Anything, mock.Anything)
}
