package services

import (
	"context"
	"testing"
	"time"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileCols = []string{
	"id", "email", "name", "password_hash", "provider", "provider_id", "avatar_url",
	"role", "status", "last_login_at", "login_count", "created_at", "updated_at",
}

func profileRow(id uuid.UUID, email string, role models.Role, status models.Status) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(profileCols).AddRow(
		id, email, "Test User", (*string)(nil), models.ProviderPassword, (*string)(nil),
		(*string)(nil), role, status, (*time.Time)(nil), 0, now, now,
	)
}

func setupProfileService(t *testing.T) (*ProfileService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewProfileService(db), mock
}

func TestProfileService_GetByEmail(t *testing.T) {
	svc, mock := setupProfileService(t)
	ctx := context.Background()
	id := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM profiles WHERE email`).
		WithArgs("admin@example.com").
		WillReturnRows(profileRow(id, "admin@example.com", models.RoleAdmin, models.StatusActive))

	profile, err := svc.GetByEmail(ctx, "admin@example.com")

	require.NoError(t, err)
	assert.Equal(t, id, profile.ID)
	assert.Equal(t, models.RoleAdmin, profile.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupProfileService(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM profiles WHERE id`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_List_Filtered(t *testing.T) {
	svc, mock := setupProfileService(t)

	rows := profileRow(uuid.New(), "a@example.com", models.RoleEditor, models.StatusActive)
	mock.ExpectQuery(`SELECT .+ FROM profiles`).
		WithArgs("editor", "active").
		WillReturnRows(rows)

	profiles, err := svc.List(context.Background(), "editor", "active")

	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, models.RoleEditor, profiles[0].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_Create_EmailTaken(t *testing.T) {
	svc, mock := setupProfileService(t)

	mock.ExpectQuery(`INSERT INTO profiles`).
		WithArgs("dupe@example.com", "Dupe", (*string)(nil), models.ProviderPassword,
			(*string)(nil), (*string)(nil), models.RoleUser, models.StatusActive).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.Create(context.Background(), CreateProfileParams{
		Email:    "dupe@example.com",
		Name:     "Dupe",
		Provider: models.ProviderPassword,
		Role:     models.RoleUser,
		Status:   models.StatusActive,
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_UpdateRoleStatus_KeepsNilFields(t *testing.T) {
	svc, mock := setupProfileService(t)
	id := uuid.New()
	status := models.StatusSuspended

	mock.ExpectQuery(`UPDATE profiles SET`).
		WithArgs((*models.Role)(nil), &status, id).
		WillReturnRows(profileRow(id, "user@example.com", models.RoleUser, models.StatusSuspended))

	profile, err := svc.UpdateRoleStatus(context.Background(), id, nil, &status)

	require.NoError(t, err)
	assert.Equal(t, models.StatusSuspended, profile.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_Delete_NotFound(t *testing.T) {
	svc, mock := setupProfileService(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM profiles WHERE id`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_RecordLogin(t *testing.T) {
	svc, mock := setupProfileService(t)
	id := uuid.New()

	mock.ExpectExec(`UPDATE profiles SET last_login_at`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := svc.RecordLogin(context.Background(), id)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileService_CountSuperAdmins(t *testing.T) {
	svc, mock := setupProfileService(t)

	rows := pgxmock.NewRows([]string{"count"}).AddRow(2)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM profiles WHERE role`).
		WithArgs(models.RoleSuperAdmin, models.StatusActive).
		WillReturnRows(rows)

	count, err := svc.CountSuperAdmins(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
