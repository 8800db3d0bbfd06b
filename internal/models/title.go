package models

// Title — элемент вишлиста или результат внешнего поиска.
// Внешний API трактуется как непрозрачный поставщик этих полей.
type Title struct {
	ID          int    `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	ReleaseYear string `json:"release_year,omitempty"`
	PosterPath  string `json:"poster_path,omitempty"`
}

// PlatformAvailability — один провайдер из ответа внешнего API
// с отметкой, подписан ли пользователь на него.
type PlatformAvailability struct {
	Name       string `json:"name"`
	Subscribed bool   `json:"subscribed"`
}

// TitleAvailability — итог проверки "где смотреть" для одного тайтла.
// Available=false означает, что провайдеры не сообщили ни одной платформы;
// это отличается от "доступен, но пользователь не подписан".
type TitleAvailability struct {
	Title       string                 `json:"title"`
	Available   bool                   `json:"available"`
	PerPlatform []PlatformAvailability `json:"per_platform"`
}
