package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// treeFields читаются всегда: по ним строится лес и подменяется тело.
var treeFields = []string{"_id", "article_id", "ancestry", "deleted", "hidden_by_commentable_user"}

// CommentsByArticle - все комментарии статьи одним запросом, в порядке создания.
func (m *Mongo) CommentsByArticle(ctx context.Context, articleID int64, fields []string, limit int) ([]models.Comment, error) {
	const op = "storage.mongo.CommentsByArticle"

	defer storage.ObserveQuery(storeLabel, string(models.Comments), time.Now())

	out, err := m.find(ctx, bson.D{{Key: "article_id", Value: articleID}}, fields, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CommentSubtree - комментарий и его потомки: корень по _id, затем потомки
// одним запросом по префиксу ancestry (использует индекс ancestry_created_asc).
func (m *Mongo) CommentSubtree(ctx context.Context, id int64, fields []string, limit int) ([]models.Comment, error) {
	const op = "storage.mongo.CommentSubtree"

	defer storage.ObserveQuery(storeLabel, string(models.Comments), time.Now())

	var root models.Comment
	err := m.comments.FindOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		options.FindOne().SetProjection(projection(fields)),
	).Decode(&root)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: find root: %w", op, err)
	}
	normalizeTimes(&root)

	out := []models.Comment{root}
	if limit == 1 {
		return out, nil
	}

	rest := 0
	if limit > 1 {
		rest = limit - 1
	}

	filter := bson.D{{Key: "ancestry", Value: primitive.Regex{Pattern: subtreePattern(root)}}}
	desc, err := m.find(ctx, filter, fields, rest)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return append(out, desc...), nil
}

// subtreePattern — якорный префикс ancestry всех потомков комментария.
func subtreePattern(root models.Comment) string {
	return "^" + regexp.QuoteMeta(root.ChildAncestry()) + "(/|$)"
}

func (m *Mongo) find(ctx context.Context, filter bson.D, fields []string, limit int) ([]models.Comment, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(projection(fields))
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}

	cur, err := m.comments.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]models.Comment, 0, max(limit, 0))
	for cur.Next(ctx) {
		var c models.Comment
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		normalizeTimes(&c)
		out = append(out, c)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}

	return out, nil
}

func normalizeTimes(c *models.Comment) {
	c.CreatedAt = c.CreatedAt.UTC()
	if !c.EditedAt.IsZero() {
		c.EditedAt = c.EditedAt.UTC()
	}
}

// projection переводит спроецированные поля в проекцию MongoDB.
// id хранится в _id.
func projection(fields []string) bson.D {
	seen := make(map[string]struct{}, len(fields)+len(treeFields))
	doc := bson.D{}
	add := func(name string) {
		if name == "id" {
			name = "_id"
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		doc = append(doc, bson.E{Key: name, Value: 1})
	}

	for _, f := range treeFields {
		add(f)
	}
	for _, f := range fields {
		add(f)
	}

	return doc
}

// Проверка на соответствие интерфейсу.
var _ storage.CommentStorage = (*Mongo)(nil)
