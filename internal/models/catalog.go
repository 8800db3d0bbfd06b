package models

import "time"

// CatalogEntry описывает платформу из внешнего каталога. Каталог неизменяем
// с точки зрения ядра: он загружается один раз за сессию и только читается.
type CatalogEntry struct {
	Name  string `json:"name"`  // Отображаемое имя платформы, ключ для Subscription.Platform
	Plans []Plan `json:"plans"` // Тарифы платформы в порядке каталога
}

// Plan — тариф платформы. Если цена менялась, OldPrice и PriceChangeDate
// описывают историческое значение и дату перехода на текущую цену.
type Plan struct {
	Name            string     `json:"name"`
	Price           float64    `json:"price"`
	OldPrice        *float64   `json:"old_price,omitempty"`
	PriceChangeDate *time.Time `json:"price_change_date,omitempty"`
}

// FindPlan ищет тариф по имени в каталоге платформы.
func (e CatalogEntry) FindPlan(name string) (Plan, bool) {
	for _, p := range e.Plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}
