// Package query строит ограниченные, спроецированные и отсортированные
// SQL-выборки для read-эндпоинтов.
//
// Все проверки входных данных выполняются до обращения к хранилищу: Compose
// либо возвращает готовый Plan, либо *models.ValidationError.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/pagination"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/projection"
)

// ErrNoKeyColumn — эндпоинт не поддерживает поиск одиночной записи.
var ErrNoKeyColumn = errors.New("endpoint has no key column")

// Plan — готовая к исполнению выборка.
// Limit всегда равен эффективному размеру страницы: хранилище не читает лишних строк.
type Plan struct {
	Endpoint string
	Type     models.ResourceType
	Columns  []string
	Table    string
	Where    []string
	Args     []any
	OrderBy  string
	Limit    int
	Offset   int
}

// Query возвращает SQL и аргументы; LIMIT/OFFSET добавляются последними плейсхолдерами.
func (p Plan) Query() (string, []any) {
	args := make([]any, 0, len(p.Args)+2)
	args = append(args, p.Args...)

	cols := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		cols[i] = pgx.Identifier{c}.Sanitize()
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(pgx.Identifier{p.Table}.Sanitize())

	if len(p.Where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(p.Where, " AND "))
	}

	if p.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(p.OrderBy)
	}

	args = append(args, p.Limit)
	fmt.Fprintf(&b, " LIMIT $%d", len(args))

	if p.Offset > 0 {
		args = append(args, p.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}

	return b.String(), args
}

// Compose строит выборку страницы для эндпоинта.
//
// Ошибки (*models.ValidationError):
//   - "<param>_invalid" — значение фильтра не прошло валидацию;
//   - "<param>_unsupported" — фильтр не поддерживается эндпоинтом.
func Compose(e Endpoint, f Filters, page pagination.Page) (Plan, error) {
	const op = "query.Compose"

	if err := f.Validate(); err != nil {
		return Plan{}, err
	}

	if page.Size <= 0 {
		return Plan{}, fmt.Errorf("%s: %s: non-positive page size %d", op, e.Name, page.Size)
	}

	present := f.present()
	for _, name := range present {
		if !e.supports(name) {
			return Plan{}, models.NewValidationError(string(name) + "_unsupported")
		}
	}

	p := e.basePlan()
	for _, name := range present {
		switch name {
		case FilterStatus:
			switch f.Status {
			case StatusPublished:
				p.Where = append(p.Where, "published = true")
			case StatusUnpublished:
				p.Where = append(p.Where, "published = false")
			}
		case FilterDates:
			col := pgx.Identifier{e.DateColumn}.Sanitize()
			p.Args = append(p.Args, f.Dates.From, f.Dates.To)
			p.Where = append(p.Where, fmt.Sprintf("%s >= $%d AND %s < $%d", col, len(p.Args)-1, col, len(p.Args)))
		default:
			p.Args = append(p.Args, f.arg(name))
			p.Where = append(p.Where, fmt.Sprintf(e.Filters[name], fmt.Sprintf("$%d", len(p.Args))))
		}
	}

	p.OrderBy = orderBy(e.Sort)
	p.Limit = page.Size
	p.Offset = page.Offset()

	return p, nil
}

// ComposeShow строит выборку одной записи по ключу эндпоинта.
func ComposeShow(e Endpoint, key any) (Plan, error) {
	const op = "query.ComposeShow"

	if e.KeyColumn == "" {
		return Plan{}, fmt.Errorf("%s: %s: %w", op, e.Name, ErrNoKeyColumn)
	}

	p := e.basePlan()
	p.Args = append(p.Args, key)
	p.Where = append(p.Where, fmt.Sprintf("%s = $%d", pgx.Identifier{e.KeyColumn}.Sanitize(), len(p.Args)))
	p.Limit = 1

	return p, nil
}

func (e Endpoint) supports(name FilterName) bool {
	if name == FilterDates {
		return e.DateColumn != ""
	}

	_, ok := e.Filters[name]
	return ok
}

func (e Endpoint) basePlan() Plan {
	where := make([]string, 0, len(e.Base)+4)
	where = append(where, e.Base...)
	if len(e.AnyOf) > 0 {
		where = append(where, "("+strings.Join(e.AnyOf, " OR ")+")")
	}

	return Plan{
		Endpoint: e.Name,
		Type:     e.Type,
		Columns:  projection.Fields(e.Type, e.View),
		Table:    e.Table,
		Where:    where,
	}
}

func orderBy(sort []Order) string {
	parts := make([]string, len(sort))
	for i, o := range sort {
		col := pgx.Identifier{o.Column}.Sanitize()
		if o.Desc {
			parts[i] = col + " DESC NULLS LAST"
		} else {
			parts[i] = col + " ASC"
		}
	}

	return strings.Join(parts, ", ")
}
