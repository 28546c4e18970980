// storage определяет контракты доступа к хранилищам read-api.
// Все операции только читают данные.
package storage

//go:generate mockgen -destination=../../mocks/storage.go -package=mocks github.com/pribylovaa/go-news-aggregator/read-api/internal/storage RecordStorage,AccountStorage,CommentStorage,MediaStorage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/query"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrMalformedRecord — строка не содержит id или он не целочисленный.
	ErrMalformedRecord = errors.New("malformed record")
)

// RecordStorage — чтение спроецированных записей по готовому плану.
type RecordStorage interface {
	// ListRecords исполняет план страницы. Возвращает не больше plan.Limit записей,
	// поля каждой записи — ровно plan.Columns в том же порядке.
	ListRecords(ctx context.Context, plan query.Plan) ([]models.Record, error)
	// RecordByKey исполняет план одиночной записи. Если запись не найдена — ErrNotFound.
	RecordByKey(ctx context.Context, plan query.Plan) (*models.Record, error)
	// Historical возвращает дневную статистику; дни без данных отсутствуют.
	Historical(ctx context.Context, plan query.HistoricalPlan) ([]models.DailyStats, error)
}

// AccountStorage — данные для аутентификации и авторизации.
type AccountStorage interface {
	// Principal возвращает пользователя с его глобальными ролями. Нет пользователя — ErrNotFound.
	Principal(ctx context.Context, userID int64) (*models.Principal, error)
	// Memberships возвращает членства пользователя в организациях.
	Memberships(ctx context.Context, userID int64) ([]models.Membership, error)
	// APISecretByPrefix ищет API-ключ по публичному префиксу. Нет ключа — ErrNotFound.
	APISecretByPrefix(ctx context.Context, prefix string) (*models.APISecret, error)
}

// CommentStorage — деревья комментариев.
//
// Каждая операция — ровно один запрос к хранилищу: ветка целиком
// загружается сразу, дальнейшая работа с деревом идёт только в памяти.
type CommentStorage interface {
	// CommentsByArticle возвращает до limit комментариев статьи в порядке создания.
	// fields — спроецированные поля; ancestry и _id читаются всегда.
	CommentsByArticle(ctx context.Context, articleID int64, fields []string, limit int) ([]models.Comment, error)
	// CommentSubtree возвращает комментарий и до limit-1 его потомков в порядке создания.
	// Если корень ветки не найден — ErrNotFound.
	CommentSubtree(ctx context.Context, id int64, fields []string, limit int) ([]models.Comment, error)
}

// MediaStorage — подписанные ссылки на медиа-объекты.
type MediaStorage interface {
	// PresignGet возвращает временную ссылку на чтение объекта по ключу.
	PresignGet(ctx context.Context, key string) (string, error)
}
