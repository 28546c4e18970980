package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/cachekeys"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/pagination"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/projection"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/query"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/serializer"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/tree"
	"github.com/pribylovaa/go-news-aggregator/read-api/pkg/log"
)

const (
	deletedBody = "[deleted]"
	hiddenBody  = "[hidden by post author]"
)

// ArticleComments возвращает дерево комментариев статьи.
// Ветка читается одним запросом; лес и ключи кэша строятся в памяти.
func (s *Service) ArticleComments(ctx context.Context, articleID string, page pagination.PageRequest) (*Response, error) {
	const op = "service.comments.ArticleComments"

	e := query.CommentsTree
	lg := log.From(ctx).With(slog.String("op", op))

	id, err := strconv.ParseInt(articleID, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	size := s.limits.Size(page.RequestedSize, e.DefaultSize)
	fields := projection.Fields(e.Type, e.View)

	comments, err := s.comments.CommentsByArticle(ctx, id, fields, size)
	if err != nil {
		lg.Error("article_comments_storage_error",
			slog.Int64("article_id", id),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := s.forestResponse(lg, e, comments)
	if err != nil {
		lg.Error("article_comments_serialize_error", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("article_comments_ok",
		slog.Int64("article_id", id),
		slog.Int("items", len(comments)),
	)

	return resp, nil
}

// CommentThread возвращает комментарий со всеми ответами.
func (s *Service) CommentThread(ctx context.Context, commentID string) (*Response, error) {
	const op = "service.comments.CommentThread"

	e := query.CommentShow
	lg := log.From(ctx).With(slog.String("op", op))

	id, err := strconv.ParseInt(commentID, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	size := s.limits.Size(0, e.DefaultSize)
	fields := projection.Fields(e.Type, e.View)

	comments, err := s.comments.CommentSubtree(ctx, id, fields, size)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("comment_thread_not_found", slog.Int64("comment_id", id))
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("comment_thread_storage_error", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := s.forestResponse(lg, e, comments)
	if err != nil {
		lg.Error("comment_thread_serialize_error", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("comment_thread_ok",
		slog.Int64("comment_id", id),
		slog.Int("items", len(comments)),
	)

	return resp, nil
}

func (s *Service) forestResponse(lg *slog.Logger, e query.Endpoint, comments []models.Comment) (*Response, error) {
	fields := projection.Fields(e.Type, e.View)

	byAncestry := tree.Build(comments,
		func(c models.Comment) int64 { return c.ID },
		models.Comment.ParentID,
	)
	if dropped := len(comments) - byAncestry.Len(); dropped > 0 {
		lg.Warn("comments_duplicates_dropped", slog.Int("dropped", dropped))
	}
	forest := tree.Map(byAncestry, func(c models.Comment) models.Record {
		return commentRecord(c, fields)
	})

	body, err := serializer.Forest(e.Type, e.View, forest)
	if err != nil {
		return nil, err
	}

	return &Response{Body: body, Keys: cachekeys.ForForest(e.Type, forest), Public: true}, nil
}

// commentRecord переводит комментарий в запись с полями проекции.
// Удалённые и скрытые комментарии остаются в дереве с подменённым телом.
func commentRecord(c models.Comment, fields []string) models.Record {
	rec := models.Record{Type: models.Comments, ID: c.ID, Fields: make([]models.Field, 0, len(fields))}

	for _, name := range fields {
		var v any
		switch name {
		case "id":
			v = c.ID
		case "article_id":
			v = c.ArticleID
		case "user_id":
			v = c.UserID
		case "ancestry":
			v = c.Ancestry
		case "body_html":
			switch {
			case c.Deleted:
				v = deletedBody
			case c.HiddenByAuthor:
				v = hiddenBody
			default:
				v = c.BodyHTML
			}
		case "public_reactions_count":
			v = c.PublicReactionsCount
		case "deleted":
			v = c.Deleted
		case "hidden_by_commentable_user":
			v = c.HiddenByAuthor
		case "created_at":
			v = c.CreatedAt
		case "edited_at":
			if !c.EditedAt.IsZero() {
				v = c.EditedAt
			}
		default:
			continue
		}
		rec.Fields = append(rec.Fields, models.Field{Name: name, Value: v})
	}

	return rec
}
