package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
)

// Defaults used until the flag cache loads, and whenever a key is
// missing or unparseable.
const (
	defaultSignupEnabled       = true
	defaultEmailVerification   = false
	defaultPasswordMinLength   = 8
	defaultMaxLoginAttempts    = 5
	defaultSessionTimeoutHours = 168
)

type featureFlags struct {
	signupEnabled       bool
	emailVerification   bool
	passwordMinLength   int
	maxLoginAttempts    int
	sessionTimeoutHours int
}

// SettingsService reads and writes site_settings rows and keeps a
// lazily-loaded cache of the auth feature flags. A failed load leaves
// the cache empty and falls back to defaults; the next read retries.
type SettingsService struct {
	db *database.DB

	mu     sync.Mutex
	flags  featureFlags
	loaded bool
}

func NewSettingsService(db *database.DB) *SettingsService {
	return &SettingsService{db: db}
}

func (s *SettingsService) Get(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := s.db.Pool.QueryRow(ctx, `
		SELECT key, value, updated_by, updated_at FROM site_settings WHERE key = $1
	`, key).Scan(&setting.Key, &setting.Value, &setting.UpdatedBy, &setting.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *SettingsService) List(ctx context.Context) ([]models.Setting, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT key, value, updated_by, updated_at FROM site_settings ORDER BY key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var setting models.Setting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedBy, &setting.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

func (s *SettingsService) Set(ctx context.Context, key, value string, updatedBy uuid.UUID) (*models.Setting, error) {
	var setting models.Setting
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO site_settings (key, value, updated_by, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_by = $3, updated_at = NOW()
		RETURNING key, value, updated_by, updated_at
	`, key, value, updatedBy).Scan(&setting.Key, &setting.Value, &setting.UpdatedBy, &setting.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.Invalidate()
	return &setting, nil
}

// Invalidate drops the flag cache so the next read reloads it.
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

func (s *SettingsService) loadFlags(ctx context.Context) featureFlags {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.flags
	}

	flags := featureFlags{
		signupEnabled:       defaultSignupEnabled,
		emailVerification:   defaultEmailVerification,
		passwordMinLength:   defaultPasswordMinLength,
		maxLoginAttempts:    defaultMaxLoginAttempts,
		sessionTimeoutHours: defaultSessionTimeoutHours,
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT key, value FROM site_settings WHERE key = ANY($1)
	`, []string{
		models.SettingSignupEnabled,
		models.SettingEmailVerification,
		models.SettingPasswordMinLength,
		models.SettingMaxLoginAttempts,
		models.SettingSessionTimeoutHours,
	})
	if err != nil {
		// Leave the cache unloaded; callers get defaults and the next
		// read retries.
		return flags
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return flags
		}
		switch key {
		case models.SettingSignupEnabled:
			if b, err := strconv.ParseBool(value); err == nil {
				flags.signupEnabled = b
			}
		case models.SettingEmailVerification:
			if b, err := strconv.ParseBool(value); err == nil {
				flags.emailVerification = b
			}
		case models.SettingPasswordMinLength:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				flags.passwordMinLength = n
			}
		case models.SettingMaxLoginAttempts:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				flags.maxLoginAttempts = n
			}
		case models.SettingSessionTimeoutHours:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				flags.sessionTimeoutHours = n
			}
		}
	}
	if rows.Err() != nil {
		return flags
	}

	s.flags = flags
	s.loaded = true
	return flags
}

func (s *SettingsService) IsSignupEnabled(ctx context.Context) bool {
	return s.loadFlags(ctx).signupEnabled
}

func (s *SettingsService) EmailVerificationRequired(ctx context.Context) bool {
	return s.loadFlags(ctx).emailVerification
}

func (s *SettingsService) PasswordMinLength(ctx context.Context) int {
	return s.loadFlags(ctx).passwordMinLength
}

func (s *SettingsService) MaxLoginAttempts(ctx context.Context) int {
	return s.loadFlags(ctx).maxLoginAttempts
}

func (s *SettingsService) SessionTimeoutHours(ctx context.Context) int {
	return s.loadFlags(ctx).sessionTimeoutHours
}
