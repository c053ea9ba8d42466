package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSettingsService(t *testing.T) (*SettingsService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewSettingsService(db), mock
}

func flagRows(pairs map[string]string) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"key", "value"})
	for k, v := range pairs {
		rows.AddRow(k, v)
	}
	return rows
}

func TestSettingsService_FlagsLoadedOnce(t *testing.T) {
	svc, mock := setupSettingsService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT key, value FROM site_settings`).
		WillReturnRows(flagRows(map[string]string{
			models.SettingSignupEnabled:     "false",
			models.SettingPasswordMinLength: "12",
		}))

	// First read hits the database, the rest are served from cache.
	assert.False(t, svc.IsSignupEnabled(ctx))
	assert.Equal(t, 12, svc.PasswordMinLength(ctx))
	assert.Equal(t, defaultMaxLoginAttempts, svc.MaxLoginAttempts(ctx))
	assert.Equal(t, defaultSessionTimeoutHours, svc.SessionTimeoutHours(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsService_FailedLoadFallsBackToDefaults(t *testing.T) {
	svc, mock := setupSettingsService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT key, value FROM site_settings`).
		WillReturnError(errors.New("connection refused"))

	assert.True(t, svc.IsSignupEnabled(ctx))
	assert.Equal(t, defaultPasswordMinLength, svc.PasswordMinLength(ctx))

	// The failure did not poison the cache: the next read retries and
	// picks up real values.
	mock.ExpectQuery(`SELECT key, value FROM site_settings`).
		WillReturnRows(flagRows(map[string]string{
			models.SettingPasswordMinLength: "10",
		}))

	assert.Equal(t, 10, svc.PasswordMinLength(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsService_UnparseableValuesKeepDefaults(t *testing.T) {
	svc, mock := setupSettingsService(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT key, value FROM site_settings`).
		WillReturnRows(flagRows(map[string]string{
			models.SettingPasswordMinLength: "not-a-number",
			models.SettingMaxLoginAttempts:  "-3",
		}))

	assert.Equal(t, defaultPasswordMinLength, svc.PasswordMinLength(ctx))
	assert.Equal(t, defaultMaxLoginAttempts, svc.MaxLoginAttempts(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsService_SetInvalidatesCache(t *testing.T) {
	svc, mock := setupSettingsService(t)
	ctx := context.Background()
	actor := uuid.New()

	mock.ExpectQuery(`SELECT key, value FROM site_settings`).
		WillReturnRows(flagRows(map[string]string{
			models.SettingSignupEnabled: "true",
		}))
	assert.True(t, svc.IsSignupEnabled(ctx))

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO site_settings`).
		WithArgs(models.SettingSignupEnabled, "false", actor).
		WillReturnRows(pgxmock.NewRows([]string{"key", "value", "updated_by", "updated_at"}).
			AddRow(models.SettingSignupEnabled, "false", &actor, now))

	setting, err := svc.Set(ctx, models.SettingSignupEnabled, "false", actor)
	require.NoError(t, err)
	assert.Equal(t, "false", setting.Value)

	// The write dropped the cache, so the next read reloads.
	mock.ExpectQuery(`SELECT key, value FROM site_settings`).
		WillReturnRows(flagRows(map[string]string{
			models.SettingSignupEnabled: "false",
		}))
	assert.False(t, svc.IsSignupEnabled(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsService_Get(t *testing.T) {
	svc, mock := setupSettingsService(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT key, value, updated_by, updated_at FROM site_settings WHERE key`).
		WithArgs("site_title").
		WillReturnRows(pgxmock.NewRows([]string{"key", "value", "updated_by", "updated_at"}).
			AddRow("site_title", "Folio", (*uuid.UUID)(nil), now))

	setting, err := svc.Get(context.Background(), "site_title")

	require.NoError(t, err)
	assert.Equal(t, "Folio", setting.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}
