// auth определяет пользователя запроса по bearer-токену или API-ключу.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/config"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/storage"
	"github.com/pribylovaa/go-news-aggregator/read-api/pkg/log"
	"github.com/pribylovaa/go-news-aggregator/read-api/pkg/redact"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials — учётные данные переданы, но не прошли проверку.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenExpired — срок действия bearer-токена истёк.
	ErrTokenExpired = errors.New("token expired")
)

// accessClaims — claims access-токена, выпущенного сервисом аутентификации.
type accessClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Authenticator проверяет учётные данные и загружает Principal.
type Authenticator struct {
	cfg      config.AuthConfig
	accounts storage.AccountStorage
	keys     *keyCache
}

// New создает Authenticator.
func New(cfg config.AuthConfig, accounts storage.AccountStorage) *Authenticator {
	return &Authenticator{
		cfg:      cfg,
		accounts: accounts,
		keys:     newKeyCache(cfg.APIKeyCacheSize, cfg.APIKeyCacheTTL),
	}
}

// Authenticate определяет пользователя по заголовкам Authorization и api-key.
// Без учётных данных возвращает (nil, nil): запрос анонимный.
// Bearer-токен имеет приоритет над API-ключом.
func (a *Authenticator) Authenticate(ctx context.Context, authorization, apiKey string) (*models.Principal, error) {
	const op = "auth.Authenticate"

	var (
		uid        int64
		credential string
		err        error
	)

	switch {
	case authorization != "":
		credential = redact.Token()
		uid, err = a.userFromBearer(authorization)
	case apiKey != "":
		credential = redact.APIKey(apiKey)
		uid, err = a.userFromAPIKey(ctx, apiKey)
	default:
		return nil, nil
	}

	if err != nil {
		log.From(ctx).Debug("authenticate_rejected",
			slog.String("op", op),
			slog.String("credential", credential),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p, err := a.accounts.Principal(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// userFromBearer валидирует access-токен и возвращает id пользователя.
func (a *Authenticator) userFromBearer(header string) (int64, error) {
	const op = "auth.userFromBearer"

	scheme, tokenStr, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(a.cfg.Leeway),
		jwt.WithExpirationRequired(),
	}
	if a.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.cfg.Issuer))
	}
	if len(a.cfg.Audience) > 0 {
		opts = append(opts, jwt.WithAudience(a.cfg.Audience...))
	}

	token, err := jwt.ParseWithClaims(strings.TrimSpace(tokenStr), &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(a.cfg.JWTSecret), nil
		},
		opts...,
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return 0, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	raw := claims.UserID
	if raw == "" {
		raw = claims.Subject
	}

	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || uid <= 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return uid, nil
}

// userFromAPIKey проверяет ключ вида "<prefix>.<secret>".
// Успешно проверенные ключи кэшируются, чтобы не считать bcrypt на каждый запрос.
func (a *Authenticator) userFromAPIKey(ctx context.Context, key string) (int64, error) {
	const op = "auth.userFromAPIKey"

	if uid, ok := a.keys.get(key); ok {
		return uid, nil
	}

	prefix, secret, ok := strings.Cut(key, ".")
	if !ok || prefix == "" || secret == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	rec, err := a.accounts.APISecretByPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(rec.SecretHash, []byte(secret)); err != nil {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	a.keys.add(key, rec.UserID)

	return rec.UserID, nil
}
