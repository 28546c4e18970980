package projection

import "github.com/pribylovaa/go-news-aggregator/read-api/internal/models"

// schema — объявленные колонки каждого ресурса. Часть колонок служебная
// (published, super_admin и т.п.) и не попадает ни в одну проекцию.
var schema = map[models.ResourceType][]string{
	models.Articles: {
		"id", "title", "description", "slug", "path", "url", "cover_image", "social_image",
		"canonical_url", "tag_list", "category", "body_html", "body_markdown", "published",
		"published_at", "created_at", "edited_at", "last_comment_at", "comments_count",
		"public_reactions_count", "page_views_count", "reading_time_minutes", "user_id",
		"organization_id",
	},
	models.Comments: {
		"id", "article_id", "user_id", "ancestry", "body_html", "public_reactions_count",
		"deleted", "hidden_by_commentable_user", "created_at", "edited_at",
	},
	models.Tags: {
		"id", "name", "bg_color_hex", "text_color_hex", "taggings_count", "supported",
	},
	models.Users: {
		"id", "username", "name", "summary", "twitter_username", "github_username",
		"website_url", "location", "profile_image", "email", "super_admin", "created_at",
	},
	models.Organizations: {
		"id", "username", "name", "summary", "twitter_username", "github_username", "url",
		"location", "tech_stack", "tag_line", "story", "profile_image", "created_at",
	},
	models.Badges: {
		"id", "slug", "title", "description", "badge_image", "credits_awarded", "created_at",
	},
	models.PodcastEpisodes: {
		"id", "podcast_id", "title", "slug", "path", "image_url", "media_url", "published",
		"published_at", "created_at",
	},
	models.Videos: {
		"id", "user_id", "title", "path", "cover_image", "video_source_url",
		"video_duration_in_seconds", "published", "published_at", "created_at",
	},
	models.Subforems: {
		"id", "domain", "name", "description", "logo_url", "root", "published", "discoverable",
		"created_at",
	},
}
