package handlers

import (
	"context"
	"io"

	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/google/uuid"
)

// AuthServiceInterface defines the methods used by handlers from AuthService
type AuthServiceInterface interface {
	SignIn(ctx context.Context, email, password string, meta services.RequestMeta) (*models.Profile, error)
	SignUp(ctx context.Context, email, password, name string, meta services.RequestMeta) (*models.Profile, error)
	CreateUser(ctx context.Context, actor *models.Profile, email, password, name string, role models.Role, meta services.RequestMeta) (*models.Profile, error)
	ChangeRoleStatus(ctx context.Context, actor *models.Profile, targetID uuid.UUID, role *models.Role, status *models.Status, meta services.RequestMeta) (*models.Profile, error)
	DeleteUser(ctx context.Context, actor *models.Profile, targetID uuid.UUID, meta services.RequestMeta) error
	FindOrCreateFromOAuth(ctx context.Context, email, name, avatarURL, provider, providerID string) (*models.Profile, error)
}

// ProfileServiceInterface defines the methods used by handlers from ProfileService
type ProfileServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context, role, status string) ([]models.Profile, error)
	UpdateSelf(ctx context.Context, id uuid.UUID, name string, avatarURL *string) (*models.Profile, error)
	Count(ctx context.Context) (int, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string, role models.Role) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
}

// ContentServiceInterface defines the methods used by handlers from ContentService
type ContentServiceInterface interface {
	GetHero(ctx context.Context) (*models.HeroContent, error)
	UpdateHero(ctx context.Context, params services.UpdateHeroParams, updatedBy uuid.UUID) (*models.HeroContent, error)
	GetAbout(ctx context.Context) (*models.AboutContent, error)
	UpdateAbout(ctx context.Context, params services.UpdateAboutParams, updatedBy uuid.UUID) (*models.AboutContent, error)
}

// ProjectServiceInterface defines the methods used by handlers from ProjectService
type ProjectServiceInterface interface {
	ListPublished(ctx context.Context) ([]models.Project, error)
	ListAll(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	Create(ctx context.Context, params services.ProjectParams) (*models.Project, error)
	Update(ctx context.Context, id uuid.UUID, params services.ProjectParams) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	List(ctx context.Context, visibleOnly bool) ([]models.TeamMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error)
	Create(ctx context.Context, params services.TeamMemberParams) (*models.TeamMember, error)
	Update(ctx context.Context, id uuid.UUID, params services.TeamMemberParams) (*models.TeamMember, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageServiceInterface defines the methods used by handlers from MessageService
type MessageServiceInterface interface {
	Create(ctx context.Context, name, email, subject, body string) (*models.ContactMessage, error)
	List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id uuid.UUID, read bool) (*models.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int, error)
}

// MediaServiceInterface defines the methods used by handlers from MediaService
type MediaServiceInterface interface {
	Upload(ctx context.Context, originalName, mimeType string, size int64, r io.Reader, uploadedBy uuid.UUID) (*models.MediaFile, error)
	List(ctx context.Context) ([]models.MediaFile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error)
	Open(ctx context.Context, fileName string) (*models.MediaFile, io.ReadCloser, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// SettingsServiceInterface defines the methods used by handlers from SettingsService
type SettingsServiceInterface interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	List(ctx context.Context) ([]models.Setting, error)
	Set(ctx context.Context, key, value string, updatedBy uuid.UUID) (*models.Setting, error)
}

// AuditServiceInterface defines the methods used by handlers from AuditService
type AuditServiceInterface interface {
	Record(ctx context.Context, entry services.AuditEntry)
	List(ctx context.Context, filter services.AuditFilter) ([]models.AuditLog, error)
	Recent(ctx context.Context, limit int) ([]models.AuditLog, error)
}
