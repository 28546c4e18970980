// handlers — HTTP-обработчики read-api. Разбирают параметры запроса,
// вызывают сервис и пишут тело вместе с заголовками кэширования.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/cachekeys"
	apierrors "github.com/pribylovaa/go-news-aggregator/read-api/internal/errors"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/pagination"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/query"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/service"
)

// Reader — операции сервиса, доступные HTTP-слою.
type Reader interface {
	List(ctx context.Context, e query.Endpoint, p service.ListParams) (*service.Response, error)
	Show(ctx context.Context, e query.Endpoint, key string) (*service.Response, error)
	Me(ctx context.Context, principal *models.Principal) (*service.Response, error)
	MyArticles(ctx context.Context, principal *models.Principal, p service.ListParams) (*service.Response, error)
	ArticleComments(ctx context.Context, articleID string, page pagination.PageRequest) (*service.Response, error)
	CommentThread(ctx context.Context, commentID string) (*service.Response, error)
	Historical(ctx context.Context, principal *models.Principal, p service.HistoricalParams) (*service.Response, error)
}

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	svc     Reader
	headers cachekeys.Headers
	now     func() time.Time
}

func New(svc Reader, headers cachekeys.Headers) *Handlers {
	return &Handlers{svc: svc, headers: headers, now: time.Now}
}

// write пишет успешный ответ сервиса: тело, Content-Type и заголовки кэша.
func (h *Handlers) write(w http.ResponseWriter, r *http.Request, resp *service.Response, err error) {
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	h.headers.Apply(w, resp.Keys, resp.Public)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.Body)
}

// listParams разбирает page/per_page и фильтры из query string.
// Фильтры, которые эндпоинт не поддерживает, отклоняет композер.
func (h *Handlers) listParams(r *http.Request) (service.ListParams, error) {
	q := r.URL.Query()

	p := service.ListParams{
		Page: pagination.ParseRequest(q.Get("per_page"), q.Get("page")),
		Filters: query.Filters{
			Tag:      strings.TrimSpace(q.Get("tag")),
			Category: strings.TrimSpace(q.Get("category")),
			Status:   strings.TrimSpace(q.Get("status")),
			Username: strings.TrimSpace(q.Get("username")),
		},
	}

	orgID, err := parseID(q.Get("organization_id"), "organization_id")
	if err != nil {
		return p, err
	}
	p.Filters.OrganizationID = orgID

	dates, err := query.ParseDateRange(q.Get("start"), q.Get("end"), h.now())
	if err != nil {
		return p, err
	}
	p.Filters.Dates = dates

	return p, nil
}

// parseID разбирает необязательный числовой параметр; пусто — 0.
func parseID(raw, name string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError(name + "_invalid")
	}

	return id, nil
}
