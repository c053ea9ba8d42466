package integration

import (
	"context"
	"testing"
	"time"

	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeInFuture() time.Time {
	return time.Now().Add(24 * time.Hour)
}

func TestContent_Integration_HeroRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewContentService(tdb.DB)
	ctx := context.Background()

	editor := fixtures.CreateProfile(t, testutil.WithRole(models.RoleEditor))

	updated, err := svc.UpdateHero(ctx, services.UpdateHeroParams{
		Headline:    "Hi there",
		Subheadline: "I build things",
		CTALabel:    "See work",
		CTAURL:      "https://example.com/work",
	}, editor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi there", updated.Headline)

	hero, err := svc.GetHero(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hi there", hero.Headline)
	assert.Equal(t, "See work", hero.CTALabel)
}

func TestContent_Integration_ProjectLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewProjectService(tdb.DB)
	ctx := context.Background()

	draft, err := svc.Create(ctx, services.ProjectParams{
		Title: "Side Project",
		Slug:  "side-project",
		Tags:  []string{"go"},
	})
	require.NoError(t, err)
	assert.False(t, draft.Published)

	// Drafts stay off the public listing
	published, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Empty(t, published)

	_, err = svc.Update(ctx, draft.ID, services.ProjectParams{
		Title:     "Side Project",
		Slug:      "side-project",
		Tags:      []string{"go"},
		Published: true,
	})
	require.NoError(t, err)

	published, err = svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "side-project", published[0].Slug)

	// Duplicate slug is rejected
	_, err = svc.Create(ctx, services.ProjectParams{Title: "Dup", Slug: "side-project"})
	assert.ErrorIs(t, err, services.ErrSlugTaken)
}

func TestContent_Integration_ProjectReorder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewProjectService(tdb.DB)
	ctx := context.Background()

	first := fixtures.CreateProject(t, testutil.WithDisplayOrder(0))
	second := fixtures.CreateProject(t, testutil.WithDisplayOrder(1))

	err := svc.Reorder(ctx, []uuid.UUID{second.ID, first.ID})
	require.NoError(t, err)

	projects, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, second.ID, projects[0].ID)
	assert.Equal(t, first.ID, projects[1].ID)
}

func TestContent_Integration_SettingsCacheInvalidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewSettingsService(tdb.DB)
	ctx := context.Background()

	super := fixtures.CreateProfile(t, testutil.WithRole(models.RoleSuperAdmin))

	assert.Equal(t, 8, svc.PasswordMinLength(ctx))

	_, err := svc.Set(ctx, "password_min_length", "12", super.ID)
	require.NoError(t, err)

	// Set invalidates the cache so the next read sees the new value
	assert.Equal(t, 12, svc.PasswordMinLength(ctx))
}
