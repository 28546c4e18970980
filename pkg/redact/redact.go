// redact маскирует чувствительные значения перед записью в лог:
// API-ключи, bearer-токены и пароли в строках подключения.
package redact

import (
	"net/url"
	"strings"
)

// APIKey оставляет публичный префикс ключа вида "<prefix>.<secret>".
//
//	"ab12.s3cr3t" -> "ab12.***"
//	"garbage"     -> "***"
//	".secret"     -> "***"
func APIKey(key string) string {
	prefix, _, ok := strings.Cut(key, ".")
	if !ok || prefix == "" {
		return "***"
	}

	return prefix + ".***"
}

// Token возвращает литерал-заглушку для токена в логах.
func Token() string { return "[REDACTED_TOKEN]" }

// URL скрывает пароль в строке подключения (postgres://, mongodb://).
// Непарсируемая строка заменяется целиком.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return "***"
	}

	return u.Redacted()
}
