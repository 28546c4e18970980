package query

import (
	"fmt"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
)

// HistoricalPlan — выборка дневной статистики.
// Days — число дней в диапазоне; это же LIMIT запроса.
type HistoricalPlan struct {
	SQL   string
	Args  []any
	Days  int
	Range DateRange
}

// ComposeHistorical строит выборку дневной статистики по статьям владельца
// (OwnerID) или организации (OrganizationID), опционально по одной статье.
//
// Диапазон дат обязателен; число дней ограничено maxDays.
func ComposeHistorical(f Filters, maxDays int) (HistoricalPlan, error) {
	if err := f.Validate(); err != nil {
		return HistoricalPlan{}, err
	}

	if f.Dates == nil {
		return HistoricalPlan{}, models.NewValidationError("start_missing")
	}

	for _, name := range f.present() {
		switch name {
		case FilterDates, FilterOwner, FilterOrganizationID, FilterArticleID:
		default:
			return HistoricalPlan{}, models.NewValidationError(string(name) + "_unsupported")
		}
	}

	days := f.Dates.Days()
	if maxDays > 0 && days > maxDays {
		return HistoricalPlan{}, models.NewValidationError("range_too_long")
	}

	args := []any{f.Dates.From, f.Dates.To}
	scope := "a.user_id = $3"
	args = append(args, f.OwnerID)
	if f.OrganizationID != 0 {
		scope = "a.organization_id = $3"
		args[2] = f.OrganizationID
	}

	sql := `SELECT s.day, SUM(s.page_views)::bigint, SUM(s.reactions)::bigint, SUM(s.comments)::bigint
FROM article_daily_stats s
JOIN articles a ON a.id = s.article_id
WHERE s.day >= $1::date AND s.day < $2 AND ` + scope

	if f.ArticleID != 0 {
		args = append(args, f.ArticleID)
		sql += fmt.Sprintf(" AND s.article_id = $%d", len(args))
	}

	args = append(args, days)
	sql += fmt.Sprintf("\nGROUP BY s.day\nORDER BY s.day ASC\nLIMIT $%d", len(args))

	return HistoricalPlan{SQL: sql, Args: args, Days: days, Range: *f.Dates}, nil
}
