package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/query"
	"github.com/pribylovaa/go-news-aggregator/read-api/pkg/log"
)

// HistoricalParams — параметры исторической статистики.
type HistoricalParams struct {
	Start          string
	End            string
	ArticleID      int64
	OrganizationID int64
}

// dayStats — строка ответа: дата в формате YYYY-MM-DD.
type dayStats struct {
	Date      string `json:"date"`
	PageViews int64  `json:"page_views"`
	Reactions int64  `json:"reactions"`
	Comments  int64  `json:"comments"`
}

// Historical возвращает дневную статистику за [start, end] по статьям
// пользователя или организации. Дни без активности заполняются нулями.
func (s *Service) Historical(ctx context.Context, principal *models.Principal, p HistoricalParams) (*Response, error) {
	const op = "service.analytics.Historical"

	if principal == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	lg := log.From(ctx).With(slog.String("op", op))

	dates, err := query.RequireDateRange(p.Start, p.End, s.now())
	if err != nil {
		lg.Warn("historical_invalid_range", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := query.Filters{Dates: dates, ArticleID: p.ArticleID}
	if p.OrganizationID != 0 {
		if err := s.authorizeOrganization(ctx, *principal, p.OrganizationID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		f.OrganizationID = p.OrganizationID
	} else {
		f.OwnerID = principal.UserID
	}

	plan, err := query.ComposeHistorical(f, s.maxDays)
	if err != nil {
		lg.Warn("historical_invalid_request", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats, err := s.records.Historical(ctx, plan)
	if err != nil {
		lg.Error("historical_storage_error", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	body, err := json.Marshal(fillDays(plan.Range, stats))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("historical_ok",
		slog.Int("days", plan.Days),
		slog.Int("active_days", len(stats)),
	)

	return &Response{Body: body, Public: false}, nil
}

// fillDays разворачивает разреженную статистику в непрерывный ряд дней диапазона.
func fillDays(r query.DateRange, stats []models.DailyStats) []dayStats {
	const layout = "2006-01-02"

	byDay := make(map[string]models.DailyStats, len(stats))
	for _, st := range stats {
		byDay[st.Date.UTC().Format(layout)] = st
	}

	out := make([]dayStats, 0, r.Days())
	for d := r.From; d.Before(r.To); d = d.AddDate(0, 0, 1) {
		key := d.Format(layout)
		st := byDay[key]
		out = append(out, dayStats{
			Date:      key,
			PageViews: st.PageViews,
			Reactions: st.Reactions,
			Comments:  st.Comments,
		})
	}

	return out
}
