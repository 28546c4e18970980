// minio предоставляет реализацию storage.MediaStorage на базе MinIO/S3:
// подписанные GET-ссылки на видео и аудио эпизодов подкастов.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/config"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"
)

const storeLabel = "minio"

// MediaStorage — адаптер MinIO для подписи ссылок на медиа.
type MediaStorage struct {
	bucket string
	ttl    time.Duration
	client *mclient.Client
}

// New создает клиент MinIO и проверяет наличие бакета.
// Region задаётся явно: подпись ссылки не требует запроса к хранилищу.
func New(ctx context.Context, cfg config.S3Config) (*MediaStorage, error) {
	const op = "storage.minio.New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &MediaStorage{bucket: cfg.Bucket, ttl: cfg.PresignTTL, client: client}, nil
}

// PresignGet возвращает временную ссылку на чтение объекта.
func (s *MediaStorage) PresignGet(ctx context.Context, key string) (string, error) {
	const op = "storage.minio.PresignGet"

	defer storage.ObserveQuery(storeLabel, "media", time.Now())

	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.ttl, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return u.String(), nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.MediaStorage = (*MediaStorage)(nil)
