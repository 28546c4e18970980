// Package cachekeys выводит ключи инвалидации edge-кэша (surrogate keys)
// из уже прочитанного набора записей и пишет соответствующие заголовки ответа.
//
// Функции пакета принимают только материализованные данные (срез записей
// или tree.Forest) и не делают никакого I/O.
package cachekeys

import (
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/tree"
)

// Set — упорядоченное множество ключей. Позицию ключа определяет первое добавление.
type Set struct {
	keys []string
	seen map[string]struct{}
}

// Add добавляет ключ, повторы игнорируются.
func (s *Set) Add(key string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.keys = append(s.keys, key)
}

// Keys возвращает ключи в порядке добавления.
func (s Set) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len — число ключей.
func (s Set) Len() int { return len(s.keys) }

// ForRecords — ключи плоского списка: коллекционный ключ на каждый тип
// (в порядке первого появления), затем ключ каждой записи.
func ForRecords(records []models.Record) Set {
	var s Set
	for _, r := range records {
		s.Add(string(r.Type))
	}
	for _, r := range records {
		s.Add(r.Key())
	}

	return s
}

// ForForest — ключи дерева: коллекционный ключ типа и ключ каждого узла
// в прямом порядке обхода.
func ForForest(t models.ResourceType, f *tree.Forest[models.Record]) Set {
	var s Set
	s.Add(string(t))
	f.Walk(func(_ int, r models.Record) {
		s.Add(r.Key())
	})

	return s
}
