package integration

import (
	"context"
	"testing"
	"time"

	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_Integration_StoreAndValidate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB, services.NewSettingsService(tdb.DB))
	ctx := context.Background()

	user := fixtures.CreateProfile(t)
	tokenHash := services.HashToken("my-refresh-token")

	// Store token
	err := svc.StoreRefreshToken(ctx, user.ID, tokenHash)
	require.NoError(t, err)

	// Validate token
	userID, err := svc.ValidateRefreshToken(ctx, tokenHash)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestTokenService_Integration_SessionTimeoutFlag(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	fixtures.SetSetting(t, "session_timeout_hours", "24")

	svc := services.NewTokenService(tdb.DB, services.NewSettingsService(tdb.DB))
	ctx := context.Background()

	assert.Equal(t, 24*time.Hour, svc.RefreshTTL(ctx))

	user := fixtures.CreateProfile(t)
	err := svc.StoreRefreshToken(ctx, user.ID, services.HashToken("flagged-session"))
	require.NoError(t, err)

	var expiresAt time.Time
	err = tdb.DB.Pool.QueryRow(ctx,
		"SELECT expires_at FROM refresh_tokens WHERE user_id = $1", user.ID).Scan(&expiresAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)
}

func TestTokenService_Integration_ValidateExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB, nil)
	ctx := context.Background()

	user := fixtures.CreateProfile(t)
	tokenHash := services.HashToken("expired-token")

	// Insert an already-expired row directly
	fixtures.CreateRefreshToken(t, user.ID, tokenHash, time.Now().Add(-1*time.Hour))

	// Validate should fail
	_, err := svc.ValidateRefreshToken(ctx, tokenHash)
	assert.Error(t, err)
}

func TestTokenService_Integration_RevokeRefreshToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB, nil)
	ctx := context.Background()

	user := fixtures.CreateProfile(t)
	tokenHash := services.HashToken("to-be-revoked")

	err := svc.StoreRefreshToken(ctx, user.ID, tokenHash)
	require.NoError(t, err)

	// Revoke
	err = svc.RevokeRefreshToken(ctx, tokenHash)
	require.NoError(t, err)

	// Validate should fail
	_, err = svc.ValidateRefreshToken(ctx, tokenHash)
	assert.Error(t, err)
}

func TestTokenService_Integration_RevokeAllUserTokens(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB, nil)
	ctx := context.Background()

	user := fixtures.CreateProfile(t)

	// Store multiple tokens
	err := svc.StoreRefreshToken(ctx, user.ID, services.HashToken("token-1"))
	require.NoError(t, err)
	err = svc.StoreRefreshToken(ctx, user.ID, services.HashToken("token-2"))
	require.NoError(t, err)
	err = svc.StoreRefreshToken(ctx, user.ID, services.HashToken("token-3"))
	require.NoError(t, err)

	// Revoke all
	err = svc.RevokeAllUserTokens(ctx, user.ID)
	require.NoError(t, err)

	// All should be invalid
	_, err = svc.ValidateRefreshToken(ctx, services.HashToken("token-1"))
	assert.Error(t, err)
	_, err = svc.ValidateRefreshToken(ctx, services.HashToken("token-2"))
	assert.Error(t, err)
	_, err = svc.ValidateRefreshToken(ctx, services.HashToken("token-3"))
	assert.Error(t, err)
}

func TestTokenService_Integration_CleanupExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB, nil)
	ctx := context.Background()

	user := fixtures.CreateProfile(t)

	// Expired row goes in directly, valid one through the service
	fixtures.CreateRefreshToken(t, user.ID, services.HashToken("expired"), time.Now().Add(-1*time.Hour))
	err := svc.StoreRefreshToken(ctx, user.ID, services.HashToken("valid"))
	require.NoError(t, err)

	// Cleanup
	err = svc.CleanupExpired(ctx)
	require.NoError(t, err)

	// Valid token should still work
	userID, err := svc.ValidateRefreshToken(ctx, services.HashToken("valid"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}
