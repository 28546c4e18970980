// Package models содержит доменные сущности read-api.
package models

import "strconv"

// ResourceType — имя типа ресурса; совпадает с именем таблицы/коллекции
// и с префиксом ключа кэша.
type ResourceType string

const (
	Articles        ResourceType = "articles"
	Comments        ResourceType = "comments"
	Tags            ResourceType = "tags"
	Users           ResourceType = "users"
	Organizations   ResourceType = "organizations"
	Badges          ResourceType = "badges"
	PodcastEpisodes ResourceType = "podcast_episodes"
	Videos          ResourceType = "videos"
	Subforems       ResourceType = "subforems"
)

// View — форма ответа для типа ресурса.
type View string

const (
	ViewIndex View = "index"
	ViewShow  View = "show"
	ViewMe    View = "me"
)

// Field — одно спроецированное поле записи.
type Field struct {
	Name  string
	Value any
}

// Record — запись ресурса в виде упорядоченного набора полей.
// Поля идут в порядке проекции, по которой запись была прочитана.
type Record struct {
	Type   ResourceType
	ID     int64
	Fields []Field
}

// Get возвращает значение поля и признак его наличия.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return nil, false
}

// Set заменяет значение существующего поля. Новые поля не добавляются.
func (r *Record) Set(name string, value any) bool {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			r.Fields[i].Value = value
			return true
		}
	}

	return false
}

// Key возвращает record_key вида "articles/42".
func (r Record) Key() string {
	return RecordKey(r.Type, r.ID)
}

// RecordKey собирает ключ кэша записи.
func RecordKey(t ResourceType, id int64) string {
	return string(t) + "/" + strconv.FormatInt(id, 10)
}
