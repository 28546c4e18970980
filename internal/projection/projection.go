// Package projection — статическая таблица проекций: какие поля ресурса
// читаются из хранилища и уходят клиенту в каждом view.
//
// Таблица фиксирована на старте процесса и не меняется. Запрос неизвестной пары
// (тип, view) — ошибка в коде, а не во входных данных, поэтому Fields паникует
// с *ConfigurationError.
package projection

import (
	"fmt"
	"slices"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
)

// ConfigurationError — нарушение целостности таблицы проекций или обращение
// к несуществующему view.
type ConfigurationError struct {
	Type   models.ResourceType
	View   models.View
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("projection %s/%s: %s", e.Type, e.View, e.Reason)
}

func init() {
	if err := validate(); err != nil {
		panic(err)
	}
}

// Fields возвращает упорядоченный список полей для пары (тип, view).
// Возвращается копия: таблица остаётся неизменяемой.
func Fields(t models.ResourceType, v models.View) []string {
	fields, ok := table[t][v]
	if !ok {
		panic(&ConfigurationError{Type: t, View: v, Reason: "unknown view"})
	}

	return slices.Clone(fields)
}

// Has сообщает, объявлен ли view для типа.
func Has(t models.ResourceType, v models.View) bool {
	_, ok := table[t][v]
	return ok
}

// Schema возвращает объявленные колонки ресурса.
func Schema(t models.ResourceType) []string {
	return slices.Clone(schema[t])
}

// Types возвращает все типы ресурсов из таблицы в стабильном порядке.
func Types() []models.ResourceType {
	out := make([]models.ResourceType, 0, len(table))
	for t := range table {
		out = append(out, t)
	}
	slices.Sort(out)

	return out
}

// validate проверяет инварианты таблицы:
//   - у каждого типа есть схема, а все поля проекций в неё входят;
//   - поле id присутствует в каждой проекции (нужно для ключа кэша);
//   - поля внутри проекции не повторяются;
//   - show — надмножество index.
func validate() error {
	for _, t := range Types() {
		views := table[t]
		cols, ok := schema[t]
		if !ok {
			return &ConfigurationError{Type: t, Reason: "no schema declared"}
		}

		for v, fields := range views {
			seen := make(map[string]struct{}, len(fields))
			for _, f := range fields {
				if !slices.Contains(cols, f) {
					return &ConfigurationError{Type: t, View: v, Reason: fmt.Sprintf("field %q is not in schema", f)}
				}
				if _, dup := seen[f]; dup {
					return &ConfigurationError{Type: t, View: v, Reason: fmt.Sprintf("field %q is duplicated", f)}
				}
				seen[f] = struct{}{}
			}

			if _, ok := seen["id"]; !ok {
				return &ConfigurationError{Type: t, View: v, Reason: "id is not projected"}
			}
		}

		index, hasIndex := views[models.ViewIndex]
		show, hasShow := views[models.ViewShow]
		if hasIndex && hasShow {
			for _, f := range index {
				if !slices.Contains(show, f) {
					return &ConfigurationError{Type: t, View: models.ViewShow, Reason: fmt.Sprintf("missing index field %q", f)}
				}
			}
		}
	}

	return nil
}
