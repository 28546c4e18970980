// Package pagination вычисляет безопасный размер страницы.
package pagination

import (
	"math"
	"strconv"
	"strings"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
)

// FallbackMax — потолок размера страницы, если API_PER_PAGE_MAX не задан.
const FallbackMax = 1000

// Clamp возвращает эффективный размер страницы:
//   - requested <= 0 -> def;
//   - результат = min(requested_or_default, max).
func Clamp(requested, def, max int) int {
	size := requested
	if size <= 0 {
		size = def
	}

	return min(size, max)
}

// ParseInt разбирает числовой query-параметр. Пустое, нечисловое и
// отрицательное значения дают 0, то есть «не задано».
func ParseInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}

	return n
}

// PageRequest — параметры страницы в том виде, как их прислал клиент.
type PageRequest struct {
	RequestedSize int
	Page          int
}

// ParseRequest разбирает per_page и page.
func ParseRequest(perPage, page string) PageRequest {
	return PageRequest{
		RequestedSize: ParseInt(perPage),
		Page:          ParseInt(page),
	}
}

// Page — эффективная страница: Size > 0, Number >= 1.
type Page struct {
	Size   int
	Number int
}

// Offset — смещение первой записи страницы.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limits — потолок размера страницы, собирается один раз из конфигурации.
type Limits struct {
	Max int
}

// NewLimits нормализует потолок: max <= 0 -> FallbackMax.
func NewLimits(max int) Limits {
	if max <= 0 {
		max = FallbackMax
	}

	return Limits{Max: max}
}

// Size — эффективный размер страницы без номера (деревья, одиночные выборки).
func (l Limits) Size(requested, def int) int {
	return Clamp(requested, def, l.Max)
}

// Page применяет Clamp к запросу с дефолтом конкретного эндпоинта.
// Номер страницы, при котором смещение не помещается в int, — "page_invalid".
func (l Limits) Page(req PageRequest, def int) (Page, error) {
	number := req.Page
	if number <= 0 {
		number = 1
	}

	size := l.Size(req.RequestedSize, def)
	if size > 0 && number-1 > math.MaxInt/size {
		return Page{}, models.NewValidationError("page_invalid")
	}

	return Page{Size: size, Number: number}, nil
}
