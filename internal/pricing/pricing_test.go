package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandropimentel/streamtrack/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func testCatalog() []models.CatalogEntry {
	changeDate := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	return []models.CatalogEntry{
		{
			Name: "Netflix",
			Plans: []models.Plan{
				{
					Name:            "Standard",
					Price:           15.49,
					OldPrice:        floatPtr(13.49),
					PriceChangeDate: timePtr(changeDate),
				},
				{
					Name:  "Premium",
					Price: 19.99,
				},
			},
		},
		{
			Name: "Disney+",
			Plans: []models.Plan{
				{
					Name:            "Standard",
					Price:           11.99,
					PriceChangeDate: timePtr(changeDate),
				},
			},
		},
	}
}

func TestResolve_TableTests(t *testing.T) {
	catalog := testCatalog()

	sub := models.Subscription{
		Platform:    "Netflix",
		Plan:        "Standard",
		Price:       13.49,
		LastDueDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		AutoRenew:   true,
	}

	tests := []struct {
		name          string
		sub           models.Subscription
		effectiveDate time.Time
		want          float64
		wantErr       error
	}{
		{
			name:          "before change date applies old price",
			sub:           sub,
			effectiveDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			want:          13.49,
		},
		{
			name:          "after change date applies current price",
			sub:           sub,
			effectiveDate: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
			want:          15.49,
		},
		{
			name:          "exactly at change date applies current price",
			sub:           sub,
			effectiveDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			want:          15.49,
		},
		{
			name: "plan without change date uses current price",
			sub: models.Subscription{
				Platform: "Netflix",
				Plan:     "Premium",
				Price:    19.99,
			},
			effectiveDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			want:          19.99,
		},
		{
			name: "change date without old price falls back to current price",
			sub: models.Subscription{
				Platform: "Disney+",
				Plan:     "Standard",
				Price:    11.99,
			},
			effectiveDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want:          11.99,
		},
		{
			name: "free subscription ignores catalog",
			sub: models.Subscription{
				Platform: "Netflix",
				Plan:     "Standard",
				Price:    13.49,
				Free:     true,
			},
			effectiveDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			want:          0,
		},
		{
			name: "platform missing from catalog degrades to stored price",
			sub: models.Subscription{
				Platform: "Canal+",
				Plan:     "Standard",
				Price:    24.99,
			},
			effectiveDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			want:          24.99,
			wantErr:       ErrCatalogMismatch,
		},
		{
			name: "plan renamed in catalog degrades to stored price",
			sub: models.Subscription{
				Platform: "Netflix",
				Plan:     "Essentiel",
				Price:    10.99,
			},
			effectiveDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			want:          10.99,
			wantErr:       ErrCatalogMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.sub, catalog, tt.effectiveDate)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

// Пустой каталог (лента недоступна) деградирует каждую подписку
// к сохранённой цене, кроме бесплатных.
func TestResolve_EmptyCatalog(t *testing.T) {
	sub := models.Subscription{Platform: "Netflix", Plan: "Standard", Price: 13.49}

	got, err := Resolve(sub, nil, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrCatalogMismatch)
	assert.InDelta(t, 13.49, got, 0.001)

	free := models.Subscription{Platform: "Netflix", Plan: "Standard", Price: 13.49, Free: true}
	got, err = Resolve(free, nil, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestTotal(t *testing.T) {
	catalog := testCatalog()

	items := []models.DisplayItem{
		{
			Subscription: models.Subscription{
				Platform: "Netflix",
				Plan:     "Standard",
				Price:    13.49,
			},
			IsCurrentMonth: true,
			EffectiveDate:  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			Subscription: models.Subscription{
				Platform: "Disney+",
				Plan:     "Standard",
				Price:    11.99,
				Free:     true,
			},
			IsCurrentMonth: true,
			EffectiveDate:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			Subscription: models.Subscription{
				Platform: "Canal+",
				Plan:     "Standard",
				Price:    24.99,
			},
			IsFuture:      true,
			EffectiveDate: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	resolved, total := Total(items, catalog)

	require.Len(t, resolved, 3)
	assert.InDelta(t, 13.49, resolved[0].AppliedPrice, 0.001)
	assert.Zero(t, resolved[1].AppliedPrice)
	assert.InDelta(t, 24.99, resolved[2].AppliedPrice, 0.001)
	assert.InDelta(t, 38.48, total, 0.001)
}

func TestTotal_EmptySet(t *testing.T) {
	resolved, total := Total(nil, testCatalog())
	assert.Empty(t, resolved)
	assert.Zero(t, total)
}
