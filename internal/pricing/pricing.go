// Package pricing вычисляет применимую цену подписки по каталогу платформ
// с учётом запланированных изменений цены. Все функции чистые: результат
// зависит только от аргументов, входные данные не мутируются.
package pricing

import (
	"errors"
	"time"

	"github.com/sandropimentel/streamtrack/internal/models"
)

// ErrCatalogMismatch сигнализирует, что платформа или тариф подписки
// отсутствуют в загруженном каталоге. Вызывающая сторона обязана
// деградировать к сохранённой цене подписки, а не падать: Resolve
// возвращает эту цену вместе с ошибкой.
var ErrCatalogMismatch = errors.New("platform or plan not found in catalog")

// Resolve возвращает цену подписки на дату effectiveDate.
//
// Для подписки в состоянии "текущий месяц" effectiveDate — это якорная дата
// (LastDueDate); для спроецированной — дата следующего продления. Дату обязан
// передать вызывающий, взяв её из классификации фильтра видимости, чтобы
// месяц показа и применённая цена никогда не разъезжались.
func Resolve(sub models.Subscription, catalog []models.CatalogEntry, effectiveDate time.Time) (float64, error) {
	if sub.Free {
		return 0, nil
	}

	plan, ok := findPlan(sub, catalog)
	if !ok {
		return sub.Price, ErrCatalogMismatch
	}

	if plan.PriceChangeDate == nil {
		return plan.Price, nil
	}
	if !effectiveDate.Before(*plan.PriceChangeDate) {
		return plan.Price, nil
	}
	if plan.OldPrice != nil {
		return *plan.OldPrice, nil
	}
	// Изменение цены в будущем, но историческое значение не сохранено.
	return plan.Price, nil
}

// Total применяет Resolve к каждому элементу отображаемого набора и
// возвращает элементы с заполненной AppliedPrice вместе с их суммой.
// Промахи каталога деградируют к сохранённой цене и не прерывают подсчёт.
func Total(items []models.DisplayItem, catalog []models.CatalogEntry) ([]models.DisplayItem, float64) {
	var sum float64
	resolved := make([]models.DisplayItem, len(items))
	for i, item := range items {
		price, _ := Resolve(item.Subscription, catalog, item.EffectiveDate)
		item.AppliedPrice = price
		resolved[i] = item
		sum += price
	}
	return resolved, sum
}

func findPlan(sub models.Subscription, catalog []models.CatalogEntry) (models.Plan, bool) {
	for _, entry := range catalog {
		if entry.Name == sub.Platform {
			return entry.FindPlan(sub.Plan)
		}
	}
	return models.Plan{}, false
}
