package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/auth"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/projection"
	"github.com/stretchr/testify/require"
)

// capHandler — тестовый slog.Handler, который:
//   - аккумулирует базовые attrs, приходящие через Logger.With(...);
//   - собирает attrs из каждой записи в map[string]any;
//   - не создаёт реальных I/O.
type capHandler struct {
	mu      sync.Mutex
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(attrs) > 0 {
		h.base = append(h.base, attrs...)
	}

	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func makeReq(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = (&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}).String()
	return req
}

type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type errEnvelope struct {
	Error apiError `json:"error"`
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	order := []string{}

	m1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m1-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m1-end")
		})
	}

	m2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m2-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m2-end")
		})
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	Chain(final, m1, m2).ServeHTTP(rr, makeReq("/chain"))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	t.Parallel()

	var seenID, seenCtxID string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = r.Header.Get("X-Request-Id")
		seenCtxID = RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	Chain(h, RequestID()).ServeHTTP(rr, makeReq("/rid"))

	respID := rr.Header().Get("X-Request-Id")
	require.Len(t, respID, 32)
	require.Equal(t, respID, seenID)
	require.Equal(t, respID, seenCtxID)
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := makeReq("/rid")
	req.Header.Set("X-Request-Id", "rid-123")

	Chain(http.NotFoundHandler(), RequestID()).ServeHTTP(rr, req)
	require.Equal(t, "rid-123", rr.Header().Get("X-Request-Id"))
}

func TestTimeout_SetsDeadline(t *testing.T) {
	t.Parallel()

	var hasDeadline bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	})

	Chain(h, Timeout(time.Second)).ServeHTTP(httptest.NewRecorder(), makeReq("/t"))
	require.True(t, hasDeadline)

	hasDeadline = false
	Chain(h, Timeout(0)).ServeHTTP(httptest.NewRecorder(), makeReq("/t"))
	require.False(t, hasDeadline)
}

func TestRecover_PanicTo500_LogsStack(t *testing.T) {
	t.Parallel()

	capH := &capHandler{}
	final := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(&projection.ConfigurationError{Type: models.Articles, View: "feed", Reason: "unknown view"})
	})

	rr := httptest.NewRecorder()
	Chain(final, RequestID(), Logging(slog.New(capH)), Recover()).ServeHTTP(rr, makeReq("/boom"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "internal", env.Error.Code)
	require.NotContains(t, rr.Body.String(), "unknown view")

	require.Equal(t, 2, capH.count, "panic record and access record")
	require.Equal(t, slog.LevelError, capH.lastLvl)
	require.EqualValues(t, http.StatusInternalServerError, capH.attrs["status"])
}

func TestLogging_WritesRecord_WithStatusDurBytesAndRequestID(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	const rid = "rid-456"
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	})

	rr := httptest.NewRecorder()
	req := makeReq("/log")
	req.Header.Set("X-Request-Id", rid)

	Chain(final, RequestID(), Logging(slog.New(h))).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, h.count)
	require.Equal(t, "http", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)

	require.Equal(t, http.MethodGet, h.attrs["method"])
	require.Equal(t, "/log", h.attrs["path"])
	require.EqualValues(t, http.StatusOK, h.attrs["status"])
	require.EqualValues(t, 10, h.attrs["bytes"])
	require.Equal(t, rid, h.attrs["request_id"])

	_, hasDur := h.attrs["dur"]
	require.True(t, hasDur)
}

func TestStatusWriter_CountsBytes_AndDefaultStatus200(t *testing.T) {
	t.Parallel()

	sw := newStatusWriter(httptest.NewRecorder())
	_, _ = sw.Write([]byte("abcd"))

	require.Equal(t, http.StatusOK, sw.status)
	require.Equal(t, 4, sw.count)
}

type fakeAuth struct {
	p   *models.Principal
	err error

	gotAuthorization, gotAPIKey string
}

func (f *fakeAuth) Authenticate(_ context.Context, authorization, apiKey string) (*models.Principal, error) {
	f.gotAuthorization, f.gotAPIKey = authorization, apiKey
	return f.p, f.err
}

func TestAuth(t *testing.T) {
	t.Parallel()

	t.Run("principal_in_context", func(t *testing.T) {
		t.Parallel()

		fa := &fakeAuth{p: &models.Principal{UserID: 42}}
		var seen *models.Principal
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { seen = PrincipalFrom(r.Context()) })

		req := makeReq("/me")
		req.Header.Set("api-key", "abc.secret")
		Chain(h, Auth(fa)).ServeHTTP(httptest.NewRecorder(), req)

		require.Equal(t, "abc.secret", fa.gotAPIKey)
		require.Equal(t, int64(42), seen.UserID)
	})

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		called := false
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			require.Nil(t, PrincipalFrom(r.Context()))
		})

		Chain(h, Auth(&fakeAuth{})).ServeHTTP(httptest.NewRecorder(), makeReq("/articles"))
		require.True(t, called)
	})

	t.Run("invalid_credentials_401", func(t *testing.T) {
		t.Parallel()

		fa := &fakeAuth{err: errors.Join(errors.New("auth.Authenticate"), auth.ErrInvalidCredentials)}
		h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { t.Fatal("handler must not run") })

		rr := httptest.NewRecorder()
		req := makeReq("/articles")
		req.Header.Set("Authorization", "Bearer broken")
		Chain(h, Auth(fa)).ServeHTTP(rr, req)

		require.Equal(t, "Bearer broken", fa.gotAuthorization)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
