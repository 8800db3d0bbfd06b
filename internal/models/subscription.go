// Package models содержит доменные структуры, описывающие подписку на
// стриминговую платформу, а также вспомогательные типы для приёма данных
// из внешних источников (JSON-запросы, каталог платформ, внешний поиск).
package models

import "time"

// Subscription представляет собой основную модель подписки,
// используемую в бизнес-логике и хранилище.
// Platform уникален в пределах списка подписок пользователя:
// правка заменяет запись целиком, история по месяцам не ведётся.
type Subscription struct {
	Platform    string    `json:"platform"`      // Ключ платформы (совпадает с CatalogEntry.Name)
	Plan        string    `json:"plan"`          // Название тарифа из каталога платформы
	Price       float64   `json:"price"`         // Сохранённая цена за месяц, 0 при Free
	LastDueDate time.Time `json:"last_due_date"` // Дата последнего списания, всегда <= сегодня
	AutoRenew   bool      `json:"auto_renew"`    // Проецируется ли подписка на следующий месяц
	Free        bool      `json:"free"`          // Бесплатная/одолженная подписка, всегда 0 в итогах
}

// DummySubscription используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Subscription.
// Дата приходит строкой в формате 02-01-2006, чтобы её можно было
// валидировать и парсить вручную.
type DummySubscription struct {
	Platform    string  `json:"platform" validate:"required"`      // Ключ платформы
	Plan        string  `json:"plan" validate:"required"`          // Название тарифа
	Price       float64 `json:"price" validate:"gte=0"`            // Цена (>=0)
	LastDueDate string  `json:"last_due_date" validate:"required"` // Дата последнего списания в формате 02-01-2006
	AutoRenew   bool    `json:"auto_renew"`                        // Автопродление
	Free        bool    `json:"free"`                              // Бесплатная подписка
}

// DisplayItem — подписка, отобранная фильтром видимости для конкретного
// отображаемого месяца. Ровно один из флагов IsCurrentMonth/IsFuture истинен.
type DisplayItem struct {
	Subscription
	IsCurrentMonth bool      `json:"is_current_month"` // Якорное списание попадает в отображаемый месяц
	IsFuture       bool      `json:"is_future"`        // В отображаемый месяц попадает следующее продление
	EffectiveDate  time.Time `json:"effective_date"`   // Дата, по которой резолвится цена
	AppliedPrice   float64   `json:"applied_price"`    // Цена, применённая к этому месяцу
}

// MonthView — агрегат для одного отображаемого месяца: отобранные подписки
// с применёнными ценами, их сумма и допустимый диапазон навигации по месяцам.
type MonthView struct {
	Month           string        `json:"month"`
	Items           []DisplayItem `json:"items"`
	Total           float64       `json:"total"`
	AvailableMonths []string      `json:"available_months"`
}

// ReminderInfo описывает продление, наступающее завтра; публикуется в очередь.
type ReminderInfo struct {
	Username string    `json:"username"`
	Platform string    `json:"platform"`
	Plan     string    `json:"plan"`
	DueDate  time.Time `json:"due_date"`
	Price    float64   `json:"price"`
}
