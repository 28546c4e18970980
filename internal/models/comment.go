package models

import (
	"strconv"
	"strings"
	"time"
)

// Comment — комментарий в MongoDB.
//   - Ancestry — материализованный путь до корня, например "1/5/7"; пусто у корня;
//   - ArticleID — статья, к которой относится вся ветка;
//   - Deleted/HiddenByAuthor — узел остаётся в дереве, но тело подменяется.
type Comment struct {
	ID                   int64     `bson:"_id"`
	ArticleID            int64     `bson:"article_id"`
	UserID               int64     `bson:"user_id"`
	Ancestry             string    `bson:"ancestry"`
	BodyHTML             string    `bson:"body_html"`
	PublicReactionsCount int64     `bson:"public_reactions_count"`
	Deleted              bool      `bson:"deleted"`
	HiddenByAuthor       bool      `bson:"hidden_by_commentable_user"`
	CreatedAt            time.Time `bson:"created_at"`
	EditedAt             time.Time `bson:"edited_at,omitempty"`
}

// ParentID возвращает id непосредственного родителя (последний сегмент ancestry).
// false — комментарий корневой или ancestry повреждён.
func (c Comment) ParentID() (int64, bool) {
	if c.Ancestry == "" {
		return 0, false
	}

	last := c.Ancestry
	if i := strings.LastIndexByte(last, '/'); i >= 0 {
		last = last[i+1:]
	}

	id, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

// ChildAncestry — значение ancestry у прямых потомков комментария.
func (c Comment) ChildAncestry() string {
	id := strconv.FormatInt(c.ID, 10)
	if c.Ancestry == "" {
		return id
	}

	return c.Ancestry + "/" + id
}
