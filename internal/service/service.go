// service содержит прикладную логику read-api: сборку выборок, обращение
// к хранилищам, сборку деревьев, сериализацию и ключи кэша.
package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/cachekeys"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/config"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/pagination"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated — эндпоинт требует пользователя, а запрос анонимный.
	// Транспорт: 401.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden — пользователь не может читать данные от имени организации.
	// Транспорт: 403.
	ErrForbidden = errors.New("forbidden")
)

// Response — готовый ответ: тело, ключи кэша и признак публичности.
// Приватные ответы (данные текущего пользователя) не кэшируются на edge.
type Response struct {
	Body   json.RawMessage
	Keys   cachekeys.Set
	Public bool
}

// Service — описывает бизнес-логику read-api.
type Service struct {
	records  storage.RecordStorage
	accounts storage.AccountStorage
	comments storage.CommentStorage
	media    storage.MediaStorage

	limits  pagination.Limits
	maxDays int
	now     func() time.Time
}

// New создает новый экземпляр Service. media может быть nil: тогда ключи
// медиа-объектов отдаются как есть.
func New(
	records storage.RecordStorage,
	accounts storage.AccountStorage,
	comments storage.CommentStorage,
	media storage.MediaStorage,
	cfg config.Config,
) *Service {
	return &Service{
		records:  records,
		accounts: accounts,
		comments: comments,
		media:    media,
		limits:   pagination.NewLimits(cfg.Pagination.PerPageMax),
		maxDays:  cfg.Analytics.MaxDays,
		now:      time.Now,
	}
}
