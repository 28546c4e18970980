package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
)

// mediaFields — поля, в которых хранятся ключи объектов в S3.
var mediaFields = map[models.ResourceType]string{
	models.Videos:          "video_source_url",
	models.PodcastEpisodes: "media_url",
}

// presignMedia заменяет ключи медиа-объектов подписанными ссылками.
// Абсолютные URL и пустые значения не трогает.
func (s *Service) presignMedia(ctx context.Context, records []models.Record) error {
	if s.media == nil {
		return nil
	}

	for i := range records {
		field, ok := mediaFields[records[i].Type]
		if !ok {
			continue
		}

		v, ok := records[i].Get(field)
		if !ok {
			continue
		}

		key, ok := v.(string)
		if !ok || key == "" || isAbsoluteURL(key) {
			continue
		}

		link, err := s.media.PresignGet(ctx, key)
		if err != nil {
			return fmt.Errorf("presign %s: %w", records[i].Key(), err)
		}
		records[i].Set(field, link)
	}

	return nil
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
