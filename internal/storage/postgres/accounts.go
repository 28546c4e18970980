package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"
)

// Principal возвращает пользователя с признаком super_admin.
func (s *Storage) Principal(ctx context.Context, userID int64) (*models.Principal, error) {
	const op = "storage.postgres.Principal"

	defer storage.ObserveQuery(storeLabel, "users", time.Now())

	var p models.Principal
	err := s.db.QueryRow(ctx, `
		SELECT id, super_admin
		FROM users
		WHERE id = $1
	`, userID).Scan(&p.UserID, &p.SuperAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	return &p, nil
}

// Memberships возвращает членства пользователя во всех организациях.
func (s *Storage) Memberships(ctx context.Context, userID int64) ([]models.Membership, error) {
	const op = "storage.postgres.Memberships"

	defer storage.ObserveQuery(storeLabel, "organization_memberships", time.Now())

	rows, err := s.db.Query(ctx, `
		SELECT user_id, organization_id, type_of_user
		FROM organization_memberships
		WHERE user_id = $1
		ORDER BY organization_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Membership, error) {
		var m models.Membership
		var role string
		err := row.Scan(&m.UserID, &m.OrganizationID, &role)
		m.Role = models.OrgRole(role)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	return out, nil
}

// APISecretByPrefix ищет API-ключ по публичному префиксу.
func (s *Storage) APISecretByPrefix(ctx context.Context, prefix string) (*models.APISecret, error) {
	const op = "storage.postgres.APISecretByPrefix"

	defer storage.ObserveQuery(storeLabel, "api_secrets", time.Now())

	var sec models.APISecret
	err := s.db.QueryRow(ctx, `
		SELECT prefix, secret_digest, user_id
		FROM api_secrets
		WHERE prefix = $1
	`, prefix).Scan(&sec.Prefix, &sec.SecretHash, &sec.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	return &sec, nil
}
