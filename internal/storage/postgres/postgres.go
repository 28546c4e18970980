// postgres реализует storage.RecordStorage и storage.AccountStorage поверх pgxpool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"
)

// storeLabel — значение метки store в метриках.
const storeLabel = "postgres"

type Storage struct {
	db *pgxpool.Pool
}

// New создает новое подключение к PostgreSQL.
func New(ctx context.Context, dbURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Ping проверяет доступность БД (readiness).
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.db.Close()
}

// classify приводит ошибки драйвера к ошибкам, понятным верхним слоям:
//   - query_canceled (statement_timeout или отмена) -> context.DeadlineExceeded;
//   - invalid_text_representation (ключ не того формата) -> storage.ErrNotFound.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.QueryCanceled:
		return fmt.Errorf("%w: %s", context.DeadlineExceeded, pgErr.Message)
	case pgerrcode.InvalidTextRepresentation:
		return storage.ErrNotFound
	default:
		return err
	}
}

// Проверка на соответствие интерфейсам.
var (
	_ storage.RecordStorage  = (*Storage)(nil)
	_ storage.AccountStorage = (*Storage)(nil)
)
