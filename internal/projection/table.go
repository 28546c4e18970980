package projection

import "github.com/pribylovaa/go-news-aggregator/read-api/internal/models"

var (
	articleIndex = []string{
		"id", "title", "description", "cover_image", "slug", "path", "url", "tag_list",
		"category", "comments_count", "public_reactions_count", "reading_time_minutes",
		"published_at", "created_at", "user_id", "organization_id",
	}
	commentIndex = []string{
		"id", "user_id", "body_html", "public_reactions_count", "created_at",
	}
	userIndex = []string{
		"id", "username", "name", "summary", "twitter_username", "github_username",
		"website_url", "location", "profile_image",
	}
	organizationIndex = []string{
		"id", "username", "name", "summary", "url", "profile_image",
	}
	badgeIndex = []string{
		"id", "slug", "title", "description", "badge_image",
	}
)

// table — статическая таблица проекций: (тип, view) -> упорядоченный список полей.
var table = map[models.ResourceType]map[models.View][]string{
	models.Articles: {
		models.ViewIndex: articleIndex,
		models.ViewShow: concat(articleIndex,
			"body_html", "body_markdown", "canonical_url", "social_image", "edited_at",
			"last_comment_at",
		),
		models.ViewMe: concat(articleIndex,
			"body_markdown", "published", "page_views_count",
		),
	},
	models.Comments: {
		models.ViewIndex: commentIndex,
		models.ViewShow:  concat(commentIndex, "article_id", "edited_at"),
	},
	models.Tags: {
		models.ViewIndex: {"id", "name", "bg_color_hex", "text_color_hex"},
	},
	models.Users: {
		models.ViewIndex: userIndex,
		models.ViewShow:  concat(userIndex, "created_at"),
		models.ViewMe:    concat(userIndex, "created_at", "email"),
	},
	models.Organizations: {
		models.ViewIndex: organizationIndex,
		models.ViewShow: concat(organizationIndex,
			"twitter_username", "github_username", "location", "tech_stack", "tag_line",
			"story", "created_at",
		),
	},
	models.Badges: {
		models.ViewIndex: badgeIndex,
		models.ViewShow:  concat(badgeIndex, "credits_awarded", "created_at"),
	},
	models.PodcastEpisodes: {
		models.ViewIndex: {
			"id", "podcast_id", "title", "slug", "path", "image_url", "media_url", "published_at",
		},
	},
	models.Videos: {
		models.ViewIndex: {
			"id", "user_id", "title", "path", "cover_image", "video_source_url",
			"video_duration_in_seconds", "published_at",
		},
	},
	models.Subforems: {
		models.ViewIndex: {"id", "domain", "name", "description", "logo_url", "root"},
	},
}

func concat(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
