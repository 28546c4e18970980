package middleware

import (
	"context"
	"net/http"

	apierrors "github.com/pribylovaa/go-news-aggregator/read-api/internal/errors"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	logctx "github.com/pribylovaa/go-news-aggregator/read-api/pkg/log"
)

// Authenticator определяет пользователя запроса по заголовкам.
// (nil, nil) — анонимный запрос.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization, apiKey string) (*models.Principal, error)
}

type principalKey struct{}

// Auth кладёт Principal в контекст. Переданные, но неверные учётные данные — 401;
// без учётных данных запрос идёт дальше как анонимный.
func Auth(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := a.Authenticate(r.Context(), r.Header.Get("Authorization"), r.Header.Get("api-key"))
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			if p != nil {
				ctx := context.WithValue(r.Context(), principalKey{}, p)
				ctx = logctx.With(ctx, "user_id", p.UserID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalFrom возвращает пользователя запроса; nil — аноним.
func PrincipalFrom(ctx context.Context) *models.Principal {
	p, _ := ctx.Value(principalKey{}).(*models.Principal)
	return p
}
