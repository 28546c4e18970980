package query

import (
	"regexp"
	"strings"
	"time"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
)

// dateLayout — формат YYYY-M-D (месяц и день без ведущего нуля допустимы).
const dateLayout = "2006-1-2"

var datePattern = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)

// DateRange — полуинтервал [From, To) в UTC.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Days — число календарных дней, которые задевает диапазон.
func (r DateRange) Days() int {
	if !r.To.After(r.From) {
		return 0
	}

	from := truncateDay(r.From)
	days := int(r.To.Sub(from) / (24 * time.Hour))
	if from.AddDate(0, 0, days).Before(r.To) {
		days++
	}

	return days
}

// ParseDateRange разбирает start/end.
//
// Правила:
//   - оба пустые -> nil (фильтра по дате нет);
//   - end без start -> ValidationError("start_missing");
//   - значения должны соответствовать YYYY-M-D и быть реальной датой;
//   - end не задан -> верхняя граница now, то есть [start, now);
//   - end задан -> день end включительно, то есть [start, end+1d);
//   - start позже end -> ValidationError("range_invalid").
func ParseDateRange(start, end string, now time.Time) (*DateRange, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	if start == "" && end == "" {
		return nil, nil
	}

	return RequireDateRange(start, end, now)
}

// RequireDateRange — как ParseDateRange, но start обязателен всегда.
func RequireDateRange(start, end string, now time.Time) (*DateRange, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	if start == "" {
		return nil, models.NewValidationError("start_missing")
	}

	from, ok := parseDate(start)
	if !ok {
		return nil, models.NewValidationError("start_invalid")
	}

	to := now.UTC()
	if end != "" {
		day, ok := parseDate(end)
		if !ok {
			return nil, models.NewValidationError("end_invalid")
		}
		to = day.AddDate(0, 0, 1)
	}

	if !from.Before(to) {
		return nil, models.NewValidationError("range_invalid")
	}

	return &DateRange{From: from, To: to}, nil
}

// parseDate проверяет формат и календарную корректность (2019-2-30 отклоняется).
func parseDate(s string) (time.Time, bool) {
	if !datePattern.MatchString(s) {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
