package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pribylovaa/go-news-aggregator/read-api/internal/authz"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/cachekeys"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/pagination"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/query"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/serializer"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"
	"github.com/pribylovaa/go-news-aggregator/read-api/pkg/log"
)

// ListParams — разобранные параметры запроса списка.
type ListParams struct {
	Page    pagination.PageRequest
	Filters query.Filters
}

// List возвращает публичную страницу эндпоинта.
//
// Размер страницы: min(per_page или дефолт эндпоинта, потолок конфигурации).
// Ошибки:
//   - *models.ValidationError — фильтр невалиден или не поддерживается эндпоинтом;
//   - прочие ошибки хранилища — обёрнутые.
func (s *Service) List(ctx context.Context, e query.Endpoint, p ListParams) (*Response, error) {
	const op = "service.records.List"

	return s.list(ctx, op, e, p, true)
}

// MyArticles — статьи текущего пользователя, включая черновики.
// С organization_id — статьи организации, если пользователь может действовать от её имени.
func (s *Service) MyArticles(ctx context.Context, principal *models.Principal, p ListParams) (*Response, error) {
	const op = "service.records.MyArticles"

	if principal == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	if orgID := p.Filters.OrganizationID; orgID != 0 {
		if err := s.authorizeOrganization(ctx, *principal, orgID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		p.Filters.OwnerID = 0
	} else {
		p.Filters.OwnerID = principal.UserID
	}

	return s.list(ctx, op, query.ArticlesMe, p, false)
}

func (s *Service) list(ctx context.Context, op string, e query.Endpoint, p ListParams, public bool) (*Response, error) {
	lg := log.From(ctx).With(slog.String("op", op), slog.String("endpoint", e.Name))

	page, err := s.limits.Page(p.Page, e.DefaultSize)
	if err != nil {
		lg.Warn("list_invalid_page", slog.Int("page", p.Page.Page))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	lg.Debug("list_request",
		slog.Int("page_size", page.Size),
		slog.Int("page", page.Number),
	)

	plan, err := query.Compose(e, p.Filters, page)
	if err != nil {
		lg.Warn("list_invalid_request", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records, err := s.records.ListRecords(ctx, plan)
	if err != nil {
		lg.Error("list_storage_error", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.presignMedia(ctx, records); err != nil {
		lg.Error("list_presign_error", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	body, err := serializer.Records(e.Type, e.View, records)
	if err != nil {
		lg.Error("list_serialize_error", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("list_ok", slog.Int("items", len(records)))

	return &Response{Body: body, Keys: cachekeys.ForRecords(records), Public: public}, nil
}

// Show возвращает одну запись по ключу эндпоинта (id или username).
// Нечисловой id — ErrNotFound.
func (s *Service) Show(ctx context.Context, e query.Endpoint, key string) (*Response, error) {
	const op = "service.records.Show"

	var arg any = key
	if e.KeyColumn == "id" {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		arg = id
	}

	return s.show(ctx, op, e, arg, true)
}

// Me — профиль текущего пользователя.
func (s *Service) Me(ctx context.Context, principal *models.Principal) (*Response, error) {
	const op = "service.records.Me"

	if principal == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	return s.show(ctx, op, query.UserMe, principal.UserID, false)
}

func (s *Service) show(ctx context.Context, op string, e query.Endpoint, key any, public bool) (*Response, error) {
	lg := log.From(ctx).With(slog.String("op", op), slog.String("endpoint", e.Name))

	plan, err := query.ComposeShow(e, key)
	if err != nil {
		lg.Error("show_compose_error", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := s.records.RecordByKey(ctx, plan)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("show_not_found", slog.Any("key", key))
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("show_storage_error", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	records := []models.Record{*rec}
	if err := s.presignMedia(ctx, records); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	body, err := serializer.Record(e.Type, e.View, records[0])
	if err != nil {
		lg.Error("show_serialize_error", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("show_ok", slog.Int64("id", rec.ID))

	return &Response{Body: body, Keys: cachekeys.ForRecords(records), Public: public}, nil
}

// authorizeOrganization проверяет право действовать от имени организации.
func (s *Service) authorizeOrganization(ctx context.Context, p models.Principal, orgID int64) error {
	var memberships []models.Membership
	if !p.SuperAdmin {
		var err error
		memberships, err = s.accounts.Memberships(ctx, p.UserID)
		if err != nil {
			return err
		}
	}

	if !authz.CanActForOrganization(p, orgID, memberships) {
		log.From(ctx).Warn("organization_access_denied",
			slog.Int64("user_id", p.UserID),
			slog.Int64("organization_id", orgID),
		)
		return ErrForbidden
	}

	return nil
}
