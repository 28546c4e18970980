package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/query"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"
)

// ListRecords исполняет план страницы одним запросом.
// LIMIT берётся из плана, поэтому строк не бывает больше plan.Limit.
func (s *Storage) ListRecords(ctx context.Context, plan query.Plan) ([]models.Record, error) {
	const op = "storage.postgres.ListRecords"

	defer storage.ObserveQuery(storeLabel, string(plan.Type), time.Now())

	sql, args := plan.Query()
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, plan.Endpoint, classify(err))
	}
	defer rows.Close()

	out := make([]models.Record, 0, plan.Limit)
	for rows.Next() {
		rec, err := scanRecord(rows, plan)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, plan.Endpoint, err)
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %s: rows: %w", op, plan.Endpoint, classify(err))
	}

	return out, nil
}

// RecordByKey исполняет план одиночной записи.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) RecordByKey(ctx context.Context, plan query.Plan) (*models.Record, error) {
	const op = "storage.postgres.RecordByKey"

	defer storage.ObserveQuery(storeLabel, string(plan.Type), time.Now())

	sql, args := plan.Query()
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, plan.Endpoint, classify(err))
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, plan.Endpoint, classify(err))
		}
		return nil, fmt.Errorf("%s: %s: %w", op, plan.Endpoint, storage.ErrNotFound)
	}

	rec, err := scanRecord(rows, plan)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, plan.Endpoint, err)
	}

	return &rec, nil
}

// scanRecord читает текущую строку в Record: поля — ровно plan.Columns в их порядке.
func scanRecord(rows pgx.Rows, plan query.Plan) (models.Record, error) {
	values, err := rows.Values()
	if err != nil {
		return models.Record{}, fmt.Errorf("scan row: %w", err)
	}

	if len(values) != len(plan.Columns) {
		return models.Record{}, fmt.Errorf("scan row: got %d values for %d columns", len(values), len(plan.Columns))
	}

	rec := models.Record{Type: plan.Type, Fields: make([]models.Field, len(values))}
	hasID := false
	for i, v := range values {
		name := plan.Columns[i]
		v = normalize(v)
		rec.Fields[i] = models.Field{Name: name, Value: v}

		if name == "id" {
			id, ok := toInt64(v)
			if !ok {
				return models.Record{}, fmt.Errorf("%w: id of type %T", storage.ErrMalformedRecord, v)
			}
			rec.ID = id
			hasID = true
		}
	}

	if !hasID {
		return models.Record{}, fmt.Errorf("%w: id is not selected", storage.ErrMalformedRecord)
	}

	return rec, nil
}

// normalize приводит значения драйвера к виду, пригодному для JSON:
// время — в UTC.
func normalize(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	default:
		return v
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	default:
		return 0, false
	}
}

// Historical возвращает дневную статистику по плану.
func (s *Storage) Historical(ctx context.Context, plan query.HistoricalPlan) ([]models.DailyStats, error) {
	const op = "storage.postgres.Historical"

	defer storage.ObserveQuery(storeLabel, "article_daily_stats", time.Now())

	rows, err := s.db.Query(ctx, plan.SQL, plan.Args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DailyStats, error) {
		var st models.DailyStats
		err := row.Scan(&st.Date, &st.PageViews, &st.Reactions, &st.Comments)
		st.Date = st.Date.UTC()
		return st, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	return out, nil
}
