// Package calendar содержит арифметику "платёжных месяцев": ключи месяцев
// и сдвиг дат на целое число календарных месяцев. Все функции чистые.
package calendar

import (
	"fmt"
	"time"
)

// monthKeyLayout — формат ключа месяца, единица сравнения платёжных месяцев.
const monthKeyLayout = "2006-01"

// MonthKey возвращает идентификатор года-месяца вида "2024-03".
// Две даты принадлежат одному платёжному месяцу тогда и только тогда,
// когда их ключи равны.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// ShiftMonths сдвигает дату на n календарных месяцев вперёд (или назад при
// n < 0). Политика переполнения дня месяца — нормализация time.AddDate:
// 31 января + 1 месяц даёт 2/3 марта. Обратимость ShiftMonths(d, n) и
// ShiftMonths(., -n) гарантируется только там, где нормализация не сработала.
func ShiftMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// ParseMonthKey разбирает ключ месяца и возвращает первый день этого месяца в UTC.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(monthKeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar.ParseMonthKey: %w", err)
	}
	return t, nil
}
