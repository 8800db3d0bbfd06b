// Package visibility отбирает подписки для отображаемого месяца и строит
// допустимый диапазон навигации по месяцам. Все функции чистые, входной
// список не мутируется.
package visibility

import (
	"time"

	"github.com/sandropimentel/streamtrack/internal/lib/calendar"
	"github.com/sandropimentel/streamtrack/internal/models"
)

// SelectForMonth возвращает подписки, видимые в отображаемом месяце.
//
// Подписка включается ровно по одному из двух условий:
//   - текущая: ключ месяца LastDueDate равен displayedMonth;
//   - спроецированная: AutoRenew и ключ месяца LastDueDate+1 равен displayedMonth.
//
// При вырожденных данных, когда выполняются оба условия, приоритет у
// "текущей". Каждый элемент несёт EffectiveDate — дату, по которой
// резолвится цена: якорную для текущих, сдвинутую на месяц для
// спроецированных.
func SelectForMonth(subs []models.Subscription, displayedMonth string) []models.DisplayItem {
	var items []models.DisplayItem
	for _, sub := range subs {
		next := calendar.ShiftMonths(sub.LastDueDate, 1)

		switch {
		case calendar.MonthKey(sub.LastDueDate) == displayedMonth:
			items = append(items, models.DisplayItem{
				Subscription:   sub,
				IsCurrentMonth: true,
				EffectiveDate:  sub.LastDueDate,
			})
		case sub.AutoRenew && calendar.MonthKey(next) == displayedMonth:
			items = append(items, models.DisplayItem{
				Subscription:  sub,
				IsFuture:      true,
				EffectiveDate: next,
			})
		}
	}
	return items
}

// AvailableMonths возвращает включительный диапазон ключей месяцев от самого
// раннего LastDueDate до месяца, следующего за now. Диапазон ограничивает
// навигацию: нельзя уйти раньше первых данных или дальше, чем на месяц
// вперёд от "сегодня". Без подписок диапазон состоит из месяца now.
func AvailableMonths(subs []models.Subscription, now time.Time) []string {
	if len(subs) == 0 {
		return []string{calendar.MonthKey(now)}
	}

	earliest := subs[0].LastDueDate
	for _, sub := range subs[1:] {
		if sub.LastDueDate.Before(earliest) {
			earliest = sub.LastDueDate
		}
	}

	// Нормализуем к первым числам, чтобы сдвиг по месяцам не зависел от дня.
	cursor := time.Date(earliest.Year(), earliest.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last = calendar.ShiftMonths(last, 1)

	var months []string
	for !cursor.After(last) {
		months = append(months, calendar.MonthKey(cursor))
		cursor = calendar.ShiftMonths(cursor, 1)
	}
	return months
}
