package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const profileColumns = `id, email, name, password_hash, provider, provider_id, avatar_url,
	role, status, last_login_at, login_count, created_at, updated_at`

type ProfileService struct {
	db *database.DB
}

func NewProfileService(db *database.DB) *ProfileService {
	return &ProfileService{db: db}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.Name, &p.PasswordHash, &p.Provider, &p.ProviderID,
		&p.AvatarURL, &p.Role, &p.Status, &p.LastLoginAt, &p.LoginCount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return scanProfile(s.db.Pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = $1
	`, id))
}

func (s *ProfileService) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return scanProfile(s.db.Pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE email = $1
	`, email))
}

func (s *ProfileService) List(ctx context.Context, role, status string) ([]models.Profile, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+profileColumns+` FROM profiles
		WHERE ($1 = '' OR role = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
	`, role, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(
			&p.ID, &p.Email, &p.Name, &p.PasswordHash, &p.Provider, &p.ProviderID,
			&p.AvatarURL, &p.Role, &p.Status, &p.LastLoginAt, &p.LoginCount,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

type CreateProfileParams struct {
	Email        string
	Name         string
	PasswordHash *string
	Provider     string
	ProviderID   *string
	AvatarURL    *string
	Role         models.Role
	Status       models.Status
}

func (s *ProfileService) Create(ctx context.Context, params CreateProfileParams) (*models.Profile, error) {
	p, err := scanProfile(s.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (email, name, password_hash, provider, provider_id, avatar_url, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+profileColumns+`
	`, params.Email, params.Name, params.PasswordHash, params.Provider,
		params.ProviderID, params.AvatarURL, params.Role, params.Status))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}

func (s *ProfileService) UpdateSelf(ctx context.Context, id uuid.UUID, name string, avatarURL *string) (*models.Profile, error) {
	return scanProfile(s.db.Pool.QueryRow(ctx, `
		UPDATE profiles SET name = $1, avatar_url = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+profileColumns+`
	`, name, avatarURL, id))
}

// UpdateRoleStatus is the admin mutation path. nil fields keep their
// current value.
func (s *ProfileService) UpdateRoleStatus(ctx context.Context, id uuid.UUID, role *models.Role, status *models.Status) (*models.Profile, error) {
	return scanProfile(s.db.Pool.QueryRow(ctx, `
		UPDATE profiles SET
			role = COALESCE($1, role),
			status = COALESCE($2, status),
			updated_at = NOW()
		WHERE id = $3
		RETURNING `+profileColumns+`
	`, role, status, id))
}

func (s *ProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// RecordLogin bumps the login metadata after a successful sign-in.
func (s *ProfileService) RecordLogin(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE profiles SET last_login_at = NOW(), login_count = login_count + 1
		WHERE id = $1
	`, id)
	return err
}

func (s *ProfileService) CountSuperAdmins(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM profiles WHERE role = $1 AND status = $2
	`, models.RoleSuperAdmin, models.StatusActive).Scan(&count)
	return count, err
}

func (s *ProfileService) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	return count, err
}
