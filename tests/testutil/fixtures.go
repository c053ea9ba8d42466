package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateProfile creates a test profile with default values. The default
// password is "password123" unless overridden with WithPassword.
func (f *Fixtures) CreateProfile(t *testing.T, opts ...ProfileOption) *models.Profile {
	t.Helper()
	f.counter++

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	hashStr := string(hash)

	profile := &models.Profile{
		Email:        fmt.Sprintf("user%d@example.com", f.counter),
		Name:         fmt.Sprintf("Test User %d", f.counter),
		PasswordHash: &hashStr,
		Provider:     models.ProviderPassword,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
	}

	for _, opt := range opts {
		opt(t, profile)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (email, name, password_hash, provider, provider_id, avatar_url, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, profile.Email, profile.Name, profile.PasswordHash, profile.Provider,
		profile.ProviderID, profile.AvatarURL, profile.Role, profile.Status).Scan(
		&profile.ID, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	return profile
}

// ProfileOption configures a test profile
type ProfileOption func(*testing.T, *models.Profile)

// WithEmail sets the profile's email
func WithEmail(email string) ProfileOption {
	return func(_ *testing.T, p *models.Profile) {
		p.Email = email
	}
}

// WithRole sets the profile's role
func WithRole(role models.Role) ProfileOption {
	return func(_ *testing.T, p *models.Profile) {
		p.Role = role
	}
}

// WithStatus sets the profile's account status
func WithStatus(status models.Status) ProfileOption {
	return func(_ *testing.T, p *models.Profile) {
		p.Status = status
	}
}

// WithPassword sets the profile's password
func WithPassword(password string) ProfileOption {
	return func(t *testing.T, p *models.Profile) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		hashStr := string(hash)
		p.PasswordHash = &hashStr
	}
}

// WithOAuthProvider marks the profile as OAuth-only, with no password
func WithOAuthProvider(provider, providerID string) ProfileOption {
	return func(_ *testing.T, p *models.Profile) {
		p.Provider = provider
		p.ProviderID = &providerID
		p.PasswordHash = nil
	}
}

// CreateProject creates a test project
func (f *Fixtures) CreateProject(t *testing.T, opts ...ProjectOption) *models.Project {
	t.Helper()
	f.counter++

	project := &models.Project{
		Title:     fmt.Sprintf("Test Project %d", f.counter),
		Slug:      fmt.Sprintf("test-project-%d", f.counter),
		Summary:   "A test project",
		Tags:      []string{},
		Published: true,
	}

	for _, opt := range opts {
		opt(project)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (title, slug, summary, body, tags, display_order, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, project.Title, project.Slug, project.Summary, project.Body,
		project.Tags, project.DisplayOrder, project.Published).Scan(
		&project.ID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	return project
}

// ProjectOption configures a test project
type ProjectOption func(*models.Project)

// WithSlug sets the project's slug
func WithSlug(slug string) ProjectOption {
	return func(p *models.Project) {
		p.Slug = slug
	}
}

// WithPublished sets the project's published flag
func WithPublished(published bool) ProjectOption {
	return func(p *models.Project) {
		p.Published = published
	}
}

// WithDisplayOrder sets the project's display order
func WithDisplayOrder(order int) ProjectOption {
	return func(p *models.Project) {
		p.DisplayOrder = order
	}
}

// CreateTeamMember creates a test team member
func (f *Fixtures) CreateTeamMember(t *testing.T, visible bool) *models.TeamMember {
	t.Helper()
	f.counter++

	member := &models.TeamMember{
		Name:    fmt.Sprintf("Member %d", f.counter),
		Title:   "Engineer",
		Visible: visible,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO team_members (name, title, bio, display_order, visible)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, member.Name, member.Title, member.Bio, member.DisplayOrder, member.Visible).Scan(
		&member.ID, &member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create team member: %v", err)
	}

	return member
}

// CreateMessage creates a test contact message
func (f *Fixtures) CreateMessage(t *testing.T, read bool) *models.ContactMessage {
	t.Helper()
	f.counter++

	msg := &models.ContactMessage{
		Name:    fmt.Sprintf("Visitor %d", f.counter),
		Email:   fmt.Sprintf("visitor%d@example.com", f.counter),
		Subject: "Hello",
		Body:    "Test message body",
		Read:    read,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, subject, body, read)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, msg.Name, msg.Email, msg.Subject, msg.Body, msg.Read).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create contact message: %v", err)
	}

	return msg
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}

// SetSetting writes a site setting directly
func (f *Fixtures) SetSetting(t *testing.T, key, value string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO site_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, value)
	if err != nil {
		t.Fatalf("failed to set setting %s: %v", key, err)
	}
}
