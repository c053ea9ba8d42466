package services

import (
	"context"
	"time"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/google/uuid"
)

// TokenService persists refresh sessions. Access tokens stay
// stateless; the server-side row is what lets a logout or a
// session_timeout_hours change actually end a session.
type TokenService struct {
	db       *database.DB
	settings *SettingsService
}

func NewTokenService(db *database.DB, settings *SettingsService) *TokenService {
	return &TokenService{db: db, settings: settings}
}

// RefreshTTL is the server-side session lifetime, read from the
// session_timeout_hours flag on every issue so operator changes apply
// to new sessions without a restart.
func (s *TokenService) RefreshTTL(ctx context.Context) time.Duration {
	if s.settings == nil {
		return defaultSessionTimeoutHours * time.Hour
	}
	return time.Duration(s.settings.SessionTimeoutHours(ctx)) * time.Hour
}

func (s *TokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, time.Now().Add(s.RefreshTTL(ctx)))
	return err
}

// ValidateRefreshToken resolves a hash to its owner. Expired rows are
// treated as absent; CleanupExpired reaps them eventually.
func (s *TokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT user_id FROM refresh_tokens
		WHERE token_hash = $1 AND expires_at > NOW()
	`, tokenHash).Scan(&userID)
	return userID, err
}

func (s *TokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
	return err
}

func (s *TokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	return err
}

func (s *TokenService) CleanupExpired(ctx context.Context) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	return err
}
