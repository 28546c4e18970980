package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/cachekeys"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/config"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/projection"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/query"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/service"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"
	"github.com/pribylovaa/go-news-aggregator/read-api/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// Сквозные тесты роутера: chi + middleware + handlers + настоящий Service
// поверх мок-хранилищ. Проверяем статусы, тела ошибок, заголовки кэша
// и то, что невалидный запрос не доходит до хранилища.

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeAuth struct{}

// Authenticate: "Bearer good" -> пользователь 42, прочие заголовки -> аноним.
func (fakeAuth) Authenticate(_ context.Context, authorization, _ string) (*models.Principal, error) {
	if authorization == "Bearer good" {
		return &models.Principal{UserID: 42}, nil
	}
	return nil, nil
}

type env struct {
	srv      http.Handler
	records  *mocks.MockRecordStorage
	comments *mocks.MockCommentStorage
}

func newEnv(t *testing.T) env {
	t.Helper()

	ctrl := gomock.NewController(t)
	e := env{
		records:  mocks.NewMockRecordStorage(ctrl),
		comments: mocks.NewMockCommentStorage(ctrl),
	}

	cfg := config.Config{
		Pagination: config.PaginationConfig{PerPageMax: 1000},
		Analytics:  config.AnalyticsConfig{MaxDays: 366},
	}
	svc := service.New(e.records, mocks.NewMockAccountStorage(ctrl), e.comments, nil, cfg)

	e.srv = NewRouter(svc, Options{
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Timeout:       time.Second,
		BasePath:      "/api",
		Authenticator: fakeAuth{},
		CacheHeaders: cachekeys.Headers{
			MaxAge:               10 * time.Minute,
			StaleWhileRevalidate: 30 * time.Second,
			StaleIfError:         24 * time.Hour,
		},
	})

	return e
}

func (e env) get(target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	e.srv.ServeHTTP(rr, req)
	return rr
}

func record(t models.ResourceType, v models.View, id int64) models.Record {
	r := models.Record{Type: t, ID: id}
	for _, f := range projection.Fields(t, v) {
		var val any
		if f == "id" {
			val = id
		}
		r.Fields = append(r.Fields, models.Field{Name: f, Value: val})
	}
	return r
}

type errBody struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func decodeErr(t *testing.T, rr *httptest.ResponseRecorder) errBody {
	t.Helper()
	var b errBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &b))
	return b
}

func TestArticles_PublicCacheHeaders(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.records.EXPECT().ListRecords(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, plan query.Plan) ([]models.Record, error) {
			require.Equal(t, 2, plan.Limit)
			return []models.Record{
				record(models.Articles, models.ViewIndex, 2),
				record(models.Articles, models.ViewIndex, 1),
			}, nil
		})

	rr := e.get("/api/articles?per_page=2")

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	require.Equal(t, "public, no-cache", rr.Header().Get("Cache-Control"))
	require.Equal(t, "articles articles/2 articles/1", rr.Header().Get("Surrogate-Key"))
	require.Equal(t, "600", rr.Header().Get("X-Accel-Expires"))
	require.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body, 2)
}

func TestValidationErrors_NeverReachStorage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target string
		reason string
	}{
		{"/api/articles?tag=c%2B%2B", "tag_invalid"},
		{"/api/articles?start=2024-13-01", "start_invalid"},
		{"/api/articles?end=2024-01-01", "start_missing"},
		{"/api/articles?start=2024-02-01&end=2024-01-01", "range_invalid"},
		{"/api/articles?organization_id=abc", "organization_id_invalid"},
		{"/api/tags?tag=go", "tag_unsupported"},
		{"/api/videos?start=2024-01-01", "dates_unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			t.Parallel()

			e := newEnv(t)
			rr := e.get(tt.target)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			b := decodeErr(t, rr)
			require.Equal(t, "validation_error", b.Error.Code)
			require.Equal(t, tt.reason, b.Error.Message)
			require.Equal(t, rr.Header().Get("X-Request-Id"), b.Error.RequestID)
		})
	}
}

func TestUsersMe(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	rr := e.get("/api/users/me")
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	me := record(models.Users, models.ViewMe, 42)
	e.records.EXPECT().RecordByKey(gomock.Any(), gomock.Any()).Return(&me, nil)

	rr = e.get("/api/users/me", "Authorization", "Bearer good")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "private, no-store", rr.Header().Get("Cache-Control"))
	require.Empty(t, rr.Header().Get("Surrogate-Key"))
}

func TestArticleShow_NotFound(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.records.EXPECT().RecordByKey(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)

	rr := e.get("/api/articles/5")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "not_found", decodeErr(t, rr).Error.Code)

	rr = e.get("/api/articles/not-a-number")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestArticleComments_TreeKeys(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.comments.EXPECT().CommentsByArticle(gomock.Any(), int64(9), gomock.Any(), 1000).
		Return([]models.Comment{
			{ID: 1, ArticleID: 9},
			{ID: 2, ArticleID: 9, Ancestry: "1"},
			{ID: 3, ArticleID: 9, Ancestry: "1/2"},
		}, nil).Times(1)

	rr := e.get("/api/articles/9/comments")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "comments comments/1 comments/2 comments/3", rr.Header().Get("Surrogate-Key"))
}

func TestStorageTimeout_504(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.records.EXPECT().ListRecords(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)

	rr := e.get("/api/subforems")
	require.Equal(t, http.StatusGatewayTimeout, rr.Code)
	require.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}

func TestOrganizationArticles_UsesPathFilter(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.records.EXPECT().ListRecords(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, plan query.Plan) ([]models.Record, error) {
			require.Contains(t, plan.Args, "acme")
			return nil, nil
		})

	rr := e.get("/api/organizations/acme/articles")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[]`, rr.Body.String())
}

func TestUnknownRoute_404(t *testing.T) {
	t.Parallel()

	rr := newEnv(t).get("/api/nope")
	require.Equal(t, http.StatusNotFound, rr.Code)
}
