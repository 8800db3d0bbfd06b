package calendar

import (
	"testing"
	"time"
)

func TestMonthKey_TableTests(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "middle of month",
			date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			want: "2024-03",
		},
		{
			name: "single digit month is padded",
			date: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			want: "2025-01",
		},
		{
			name: "december",
			date: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			want: "2023-12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthKey(tt.date); got != tt.want {
				t.Errorf("MonthKey(%v) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestShiftMonths_TableTests(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		n    int
		want time.Time
	}{
		{
			name: "forward one month keeps day",
			date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			n:    1,
			want: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "december wraps to january with year increment",
			date: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
			n:    1,
			want: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "backward one month",
			date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			n:    -1,
			want: time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "day overflow rolls into next month",
			date: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			n:    1,
			want: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "zero months",
			date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			n:    0,
			want: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShiftMonths(tt.date, tt.n); !got.Equal(tt.want) {
				t.Errorf("ShiftMonths(%v, %d) = %v, want %v", tt.date, tt.n, got, tt.want)
			}
		})
	}
}

// Сдвиг на месяц всегда даёт ключ следующего календарного месяца,
// включая переход декабрь -> январь.
func TestShiftMonths_MonthKeyProperty(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 11, 30, 0, 0, 0, 0, time.UTC),
	}

	for _, d := range dates {
		gotKey := MonthKey(ShiftMonths(d, 1))

		year, month := d.Year(), int(d.Month())+1
		if month > 12 {
			month = 1
			year++
		}
		wantKey := MonthKey(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))

		if gotKey != wantKey {
			t.Errorf("MonthKey(ShiftMonths(%v, 1)) = %q, want %q", d, gotKey, wantKey)
		}
	}
}

func TestParseMonthKey(t *testing.T) {
	got, err := ParseMonthKey("2024-06")
	if err != nil {
		t.Fatalf("ParseMonthKey returned error: %v", err)
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseMonthKey(\"2024-06\") = %v, want %v", got, want)
	}

	if _, err := ParseMonthKey("june 2024"); err == nil {
		t.Error("ParseMonthKey with malformed key expected error, got nil")
	}
}
