package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	apierrors "github.com/pribylovaa/go-news-aggregator/read-api/internal/errors"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/projection"
	logctx "github.com/pribylovaa/go-news-aggregator/read-api/pkg/log"
)

// Recover перехватывает panic, конвертирует в 500/internal и пишет унифицированный ответ.
// Детали паники не утекают на клиент; в лог пишутся причина и стек.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				attrs := []slog.Attr{
					slog.String("path", r.URL.Path),
					slog.Any("reason", rec),
					slog.String("stack", string(debug.Stack())),
				}
				if err, ok := rec.(error); ok {
					var cfgErr *projection.ConfigurationError
					if errors.As(err, &cfgErr) {
						attrs = append(attrs, slog.Bool("configuration_error", true))
					}
				}

				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic", attrs...)
				apierrors.WriteError(w, r, fmt.Errorf("internal"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
