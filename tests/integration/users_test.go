package integration

import (
	"context"
	"testing"

	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_Integration_RoleChangeAudited(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newAuthService(tdb)
	ctx := context.Background()
	meta := services.RequestMeta{IPAddress: "10.0.0.1"}

	super := fixtures.CreateProfile(t, testutil.WithRole(models.RoleSuperAdmin))
	target := fixtures.CreateProfile(t)

	role := models.RoleEditor
	updated, err := svc.ChangeRoleStatus(ctx, super, target.ID, &role, nil, meta)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, updated.Role)
	assert.Equal(t, models.StatusActive, updated.Status)

	// The change lands in the audit log
	var count int
	err = tdb.DB.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM audit_logs WHERE action = $1 AND resource_id = $2",
		models.AuditUserUpdated, target.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUsers_Integration_LastSuperAdminProtected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newAuthService(tdb)
	ctx := context.Background()

	super := fixtures.CreateProfile(t, testutil.WithRole(models.RoleSuperAdmin))

	role := models.RoleAdmin
	_, err := svc.ChangeRoleStatus(ctx, super, super.ID, &role, nil, services.RequestMeta{})
	assert.ErrorIs(t, err, services.ErrLastSuperAdmin)

	// Self-deletion is refused outright
	err = svc.DeleteUser(ctx, super, super.ID, services.RequestMeta{})
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
}

func TestUsers_Integration_AdminCannotTouchSuperAdmin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newAuthService(tdb)
	ctx := context.Background()

	admin := fixtures.CreateProfile(t, testutil.WithRole(models.RoleAdmin))
	super := fixtures.CreateProfile(t, testutil.WithRole(models.RoleSuperAdmin))

	status := models.StatusSuspended
	_, err := svc.ChangeRoleStatus(ctx, admin, super.ID, nil, &status, services.RequestMeta{})
	assert.ErrorIs(t, err, services.ErrPermissionDenied)
}

func TestUsers_Integration_DeleteCascadesTokens(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newAuthService(tdb)
	tokens := services.NewTokenService(tdb.DB, nil)
	ctx := context.Background()

	super := fixtures.CreateProfile(t, testutil.WithRole(models.RoleSuperAdmin))
	target := fixtures.CreateProfile(t)

	hash := services.HashToken("target-session")
	fixtures.CreateRefreshToken(t, target.ID, hash, timeInFuture())

	err := svc.DeleteUser(ctx, super, target.ID, services.RequestMeta{})
	require.NoError(t, err)

	_, err = tokens.ValidateRefreshToken(ctx, hash)
	assert.Error(t, err)
}

func TestUsers_Integration_PromoteToSuperAdmin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := newAuthService(tdb)
	ctx := context.Background()

	profile := fixtures.CreateProfile(t)

	promoted, err := svc.PromoteToSuperAdmin(ctx, profile.Email)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, promoted.Role)
	assert.Equal(t, models.StatusActive, promoted.Status)
}
