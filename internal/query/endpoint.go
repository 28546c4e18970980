package query

import (
	"fmt"
	"slices"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/projection"
)

// Order — элемент фиксированной сортировки эндпоинта.
// DESC всегда рендерится с NULLS LAST.
type Order struct {
	Column string
	Desc   bool
}

// Endpoint — статическое описание выборки одного эндпоинта: тип и view,
// таблица, постоянные предикаты, допустимые фильтры, сортировка и
// размер страницы по умолчанию.
type Endpoint struct {
	Name  string
	Type  models.ResourceType
	View  models.View
	Table string
	// Base — предикаты, применяемые всегда (через AND).
	Base []string
	// AnyOf — группа предикатов, объединённых через OR; добавляется к Base одним конъюнктом.
	AnyOf []string
	// Filters — SQL-шаблоны допустимых фильтров; %s заменяется плейсхолдером.
	// Пустой шаблон — фильтр допустим, но строится особым образом (status).
	Filters map[FilterName]string
	// DateColumn — колонка для фильтра по диапазону дат; пусто — фильтр не поддерживается.
	DateColumn string
	// KeyColumn — колонка поиска одиночной записи (show/me).
	KeyColumn   string
	Sort        []Order
	DefaultSize int
}

// newestFirst — сортировка лент: свежие публикации первыми,
// при равенстве published_at — по времени создания, затем по id.
var newestFirst = []Order{
	{Column: "published_at", Desc: true},
	{Column: "created_at", Desc: true},
	{Column: "id", Desc: true},
}

const (
	byUsername         = "user_id = (SELECT id FROM users WHERE username = %s)"
	byOrganization     = "organization_id = (SELECT id FROM organizations WHERE username = %s)"
	byOrganizationID   = "organization_id = %s"
	byOwner            = "user_id = %s"
	byTag              = "%s = ANY(tag_list)"
	byCategory         = "category = %s"
	byPodcastSlug      = "podcast_id = (SELECT id FROM podcasts WHERE slug = %s)"
	byOrganizationUser = "id IN (SELECT m.user_id FROM organization_memberships m " +
		"JOIN organizations o ON o.id = m.organization_id " +
		"WHERE o.username = %s AND m.type_of_user IN ('member', 'admin'))"
)

var (
	ArticlesIndex = Endpoint{
		Name:  "articles_index",
		Type:  models.Articles,
		View:  models.ViewIndex,
		Table: "articles",
		Base:  []string{"published = true"},
		Filters: map[FilterName]string{
			FilterTag:            byTag,
			FilterCategory:       byCategory,
			FilterUsername:       byUsername,
			FilterOrganizationID: byOrganizationID,
			FilterOrganization:   byOrganization,
		},
		DateColumn:  "published_at",
		Sort:        newestFirst,
		DefaultSize: 30,
	}

	ArticleShow = Endpoint{
		Name:      "articles_show",
		Type:      models.Articles,
		View:      models.ViewShow,
		Table:     "articles",
		Base:      []string{"published = true"},
		KeyColumn: "id",
	}

	// ArticlesMe — статьи автора, включая черновики. Owner подставляет сервис.
	ArticlesMe = Endpoint{
		Name:  "articles_me",
		Type:  models.Articles,
		View:  models.ViewMe,
		Table: "articles",
		Filters: map[FilterName]string{
			FilterOwner:          byOwner,
			FilterStatus:         "",
			FilterOrganizationID: byOrganizationID,
		},
		Sort:        newestFirst,
		DefaultSize: 30,
	}

	TagsIndex = Endpoint{
		Name:        "tags_index",
		Type:        models.Tags,
		View:        models.ViewIndex,
		Table:       "tags",
		Sort:        []Order{{Column: "taggings_count", Desc: true}, {Column: "id"}},
		DefaultSize: 10,
	}

	UserShow = Endpoint{
		Name:      "users_show",
		Type:      models.Users,
		View:      models.ViewShow,
		Table:     "users",
		KeyColumn: "id",
	}

	UserMe = Endpoint{
		Name:      "users_me",
		Type:      models.Users,
		View:      models.ViewMe,
		Table:     "users",
		KeyColumn: "id",
	}

	OrganizationUsers = Endpoint{
		Name:        "organization_users",
		Type:        models.Users,
		View:        models.ViewIndex,
		Table:       "users",
		Filters:     map[FilterName]string{FilterOrganization: byOrganizationUser},
		Sort:        []Order{{Column: "id"}},
		DefaultSize: 30,
	}

	OrganizationShow = Endpoint{
		Name:      "organizations_show",
		Type:      models.Organizations,
		View:      models.ViewShow,
		Table:     "organizations",
		KeyColumn: "username",
	}

	BadgesIndex = Endpoint{
		Name:        "badges_index",
		Type:        models.Badges,
		View:        models.ViewIndex,
		Table:       "badges",
		Sort:        []Order{{Column: "id"}},
		DefaultSize: 30,
	}

	BadgeShow = Endpoint{
		Name:      "badges_show",
		Type:      models.Badges,
		View:      models.ViewShow,
		Table:     "badges",
		KeyColumn: "id",
	}

	PodcastEpisodesIndex = Endpoint{
		Name:        "podcast_episodes_index",
		Type:        models.PodcastEpisodes,
		View:        models.ViewIndex,
		Table:       "podcast_episodes",
		Base:        []string{"published = true"},
		Filters:     map[FilterName]string{FilterUsername: byPodcastSlug},
		Sort:        newestFirst,
		DefaultSize: 30,
	}

	VideosIndex = Endpoint{
		Name:        "videos_index",
		Type:        models.Videos,
		View:        models.ViewIndex,
		Table:       "videos",
		Base:        []string{"published = true", "video_source_url IS NOT NULL"},
		Sort:        newestFirst,
		DefaultSize: 24,
	}

	// SubforemsIndex — discoverable-подфорумы: опубликованные или корневой.
	SubforemsIndex = Endpoint{
		Name:        "subforems_index",
		Type:        models.Subforems,
		View:        models.ViewIndex,
		Table:       "subforems",
		Base:        []string{"discoverable = true"},
		AnyOf:       []string{"published = true", "root = true"},
		Sort:        []Order{{Column: "root", Desc: true}, {Column: "id"}},
		DefaultSize: 100,
	}

	// CommentsTree и CommentShow читаются из MongoDB; SQL для них не строится,
	// но тип, view и размер страницы берутся отсюда.
	CommentsTree = Endpoint{
		Name:        "comments_tree",
		Type:        models.Comments,
		View:        models.ViewIndex,
		Table:       "comments",
		DefaultSize: 1000,
	}

	CommentShow = Endpoint{
		Name:        "comments_show",
		Type:        models.Comments,
		View:        models.ViewShow,
		Table:       "comments",
		DefaultSize: 1000,
	}
)

func init() {
	if err := checkEndpoints(Endpoints()); err != nil {
		panic(err)
	}
}

// Endpoints — все SQL-эндпоинты.
func Endpoints() []Endpoint {
	return []Endpoint{
		ArticlesIndex, ArticleShow, ArticlesMe, TagsIndex, UserShow, UserMe,
		OrganizationUsers, OrganizationShow, BadgesIndex, BadgeShow,
		PodcastEpisodesIndex, VideosIndex, SubforemsIndex,
	}
}

// checkEndpoints сверяет описания эндпоинтов с таблицей проекций:
// view объявлен, а колонки сортировки, дат и ключа есть в схеме ресурса.
func checkEndpoints(es []Endpoint) error {
	for _, e := range es {
		if !projection.Has(e.Type, e.View) {
			return &projection.ConfigurationError{Type: e.Type, View: e.View, Reason: "endpoint " + e.Name + ": unknown view"}
		}

		cols := projection.Schema(e.Type)
		check := make([]string, 0, len(e.Sort)+2)
		for _, o := range e.Sort {
			check = append(check, o.Column)
		}
		if e.DateColumn != "" {
			check = append(check, e.DateColumn)
		}
		if e.KeyColumn != "" {
			check = append(check, e.KeyColumn)
		}

		for _, c := range check {
			if !slices.Contains(cols, c) {
				return &projection.ConfigurationError{
					Type:   e.Type,
					View:   e.View,
					Reason: fmt.Sprintf("endpoint %s: column %q is not in schema", e.Name, c),
				}
			}
		}
	}

	return nil
}
