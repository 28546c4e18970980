package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/cachekeys"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/http/handlers"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/http/middleware"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/query"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger        *slog.Logger
	Timeout       time.Duration
	BasePath      string // например, "/api"; если пустой — роуты регистрируются на корне.
	Authenticator middleware.Authenticator
	CacheHeaders  cachekeys.Headers
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Reader, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	stack := []middleware.Middleware{
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Recover(),            // паника -> 500, с request_id в логе
	}
	if opts.Timeout > 0 {
		stack = append(stack, middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}
	if opts.Authenticator != nil {
		stack = append(stack, middleware.Auth(opts.Authenticator))
	}
	root.Use(func(next http.Handler) http.Handler {
		return middleware.Chain(next, stack...)
	})

	h := handlers.New(svc, opts.CacheHeaders)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
// Статические сегменты (/articles/me, /users/me) chi матчит раньше параметров.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// articles
	r.Get("/articles", h.List(query.ArticlesIndex))
	r.Get("/articles/me", h.MyArticles)
	r.Get("/articles/{id}", h.Show(query.ArticleShow, "id"))
	r.Get("/articles/{id}/comments", h.ArticleComments)

	// comments
	r.Get("/comments/{id}", h.CommentThread)

	// users & organizations
	r.Get("/users/me", h.Me)
	r.Get("/users/{id}", h.Show(query.UserShow, "id"))
	r.Get("/organizations/{username}", h.Show(query.OrganizationShow, "username"))
	r.Get("/organizations/{username}/users", h.OrganizationList(query.OrganizationUsers))
	r.Get("/organizations/{username}/articles", h.OrganizationList(query.ArticlesIndex))

	// catalogues
	r.Get("/tags", h.List(query.TagsIndex))
	r.Get("/badges", h.List(query.BadgesIndex))
	r.Get("/badges/{id}", h.Show(query.BadgeShow, "id"))
	r.Get("/podcast_episodes", h.List(query.PodcastEpisodesIndex))
	r.Get("/videos", h.List(query.VideosIndex))
	r.Get("/subforems", h.List(query.SubforemsIndex))

	// analytics
	r.Get("/analytics/historical", h.Historical)
}
