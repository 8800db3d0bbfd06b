// Package matcher сверяет названия платформ пользователя с написанием тех же
// платформ у внешнего провайдера ("Prime Video" против "Amazon Prime Video")
// и отвечает на вопрос "подписан ли пользователь на платформу, где идёт тайтл".
package matcher

import (
	"strings"

	"github.com/sandropimentel/streamtrack/internal/models"
)

// AliasTable сопоставляет внутренний ключ платформы с набором допустимых
// внешних написаний.
type AliasTable map[string][]string

// DefaultAliases покрывает платформы из стартового каталога. Ключ без записи
// в таблице не матчится ни с чем, даже при точном совпадении написания:
// совпадение с самим ключом не предполагается.
var DefaultAliases = AliasTable{
	"Netflix":     {"Netflix"},
	"Disney+":     {"Disney Plus", "Disney+"},
	"Prime Video": {"Amazon Prime Video", "Prime Video"},
	"Apple TV+":   {"Apple TV+"},
	"Paramount+":  {"Paramount+", "Paramount Plus"},
}

// IsSubscribed сообщает, подписан ли пользователь на платформу, которую
// провайдер называет providerName. Сравнение — точное по строке без учёта
// регистра, только против алиасов; подстроки и нечёткие совпадения не
// используются.
func IsSubscribed(userPlatforms []string, providerName string, aliases AliasTable) bool {
	needle := strings.ToLower(providerName)
	for _, platform := range userPlatforms {
		for _, alias := range aliases[platform] {
			if strings.ToLower(alias) == needle {
				return true
			}
		}
	}
	return false
}

// ClassifyTitleAvailability применяет IsSubscribed к каждой платформе,
// о которой сообщил провайдер. Пустой список провайдеров означает, что тайтл
// недоступен вовсе — это отличимо от "доступен, но не подписан".
func ClassifyTitleAvailability(title string, providerPlatforms, userPlatforms []string, aliases AliasTable) models.TitleAvailability {
	result := models.TitleAvailability{
		Title:     title,
		Available: len(providerPlatforms) > 0,
	}
	for _, name := range providerPlatforms {
		result.PerPlatform = append(result.PerPlatform, models.PlatformAvailability{
			Name:       name,
			Subscribed: IsSubscribed(userPlatforms, name, aliases),
		})
	}
	return result
}
