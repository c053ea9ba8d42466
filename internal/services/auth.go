package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dstanic/folio-api/internal/lockout"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RequestMeta carries the client context recorded with audited auth
// events.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// AuthService owns credential verification, signup, and admin user
// provisioning. Every sign-in attempt is audited, and failed attempts
// feed the lockout limiter.
type AuthService struct {
	profiles *ProfileService
	settings *SettingsService
	audit    *AuditService
	limiter  *lockout.Limiter
	logger   *zap.Logger
}

func NewAuthService(
	profiles *ProfileService,
	settings *SettingsService,
	audit *AuditService,
	limiter *lockout.Limiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		profiles: profiles,
		settings: settings,
		audit:    audit,
		limiter:  limiter,
		logger:   logger,
	}
}

// SignIn verifies email+password and returns the profile on success.
// Lockout and status checks happen before the final verdict so a
// suspended account never learns whether its password was right.
func (s *AuthService) SignIn(ctx context.Context, email, password string, meta RequestMeta) (*models.Profile, error) {
	if locked, err := s.isLockedOut(ctx, email); err != nil {
		s.logger.Warn("lockout check failed, allowing attempt", zap.Error(err))
	} else if locked {
		s.audit.Record(ctx, AuditEntry{
			Action:       models.AuditLoginLocked,
			ResourceType: "profile",
			Details:      map[string]string{"email": email},
			IPAddress:    meta.IPAddress,
			UserAgent:    meta.UserAgent,
		})
		return nil, ErrAccountLocked
	}

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailure(ctx, email, meta)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	if profile.PasswordHash == nil {
		// OAuth-only account; there is no password to check.
		s.recordFailure(ctx, email, meta)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*profile.PasswordHash), []byte(password)); err != nil {
		s.recordFailure(ctx, email, meta)
		return nil, ErrInvalidCredentials
	}

	if err := statusError(profile.Status); err != nil {
		s.audit.Record(ctx, AuditEntry{
			ActorID:      &profile.ID,
			Action:       models.AuditLoginFailed,
			ResourceType: "profile",
			ResourceID:   &profile.ID,
			Details:      map[string]string{"reason": string(profile.Status)},
			IPAddress:    meta.IPAddress,
			UserAgent:    meta.UserAgent,
		})
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn("failed to reset lockout counter", zap.Error(err))
		}
	}
	if err := s.profiles.RecordLogin(ctx, profile.ID); err != nil {
		s.logger.Warn("failed to record login metadata", zap.Error(err))
	}
	s.audit.Record(ctx, AuditEntry{
		ActorID:      &profile.ID,
		Action:       models.AuditLoginSuccess,
		ResourceType: "profile",
		ResourceID:   &profile.ID,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	})

	return profile, nil
}

// SignUp self-registers a new account, gated on the signup feature
// flag and password policy. The account starts as a plain user;
// email_verification_required parks it in pending.
func (s *AuthService) SignUp(ctx context.Context, email, password, name string, meta RequestMeta) (*models.Profile, error) {
	if !s.settings.IsSignupEnabled(ctx) {
		return nil, ErrSignupDisabled
	}
	if len(password) < s.settings.PasswordMinLength(ctx) {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	status := models.StatusActive
	if s.settings.EmailVerificationRequired(ctx) {
		status = models.StatusPending
	}

	profile, err := s.profiles.Create(ctx, CreateProfileParams{
		Email:        email,
		Name:         name,
		PasswordHash: &hashStr,
		Provider:     models.ProviderPassword,
		Role:         models.RoleUser,
		Status:       status,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:      &profile.ID,
		Action:       models.AuditSignup,
		ResourceType: "profile",
		ResourceID:   &profile.ID,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	})

	return profile, nil
}

// CreateUser provisions an account on behalf of an admin. The actor
// must hold at least admin; granting super_admin requires super_admin.
func (s *AuthService) CreateUser(ctx context.Context, actor *models.Profile, email, password, name string, role models.Role, meta RequestMeta) (*models.Profile, error) {
	if !actor.HasRole(models.RoleAdmin) {
		return nil, ErrPermissionDenied
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if role == models.RoleSuperAdmin && !actor.HasRole(models.RoleSuperAdmin) {
		return nil, ErrPermissionDenied
	}
	if len(password) < s.settings.PasswordMinLength(ctx) {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	profile, err := s.profiles.Create(ctx, CreateProfileParams{
		Email:        email,
		Name:         name,
		PasswordHash: &hashStr,
		Provider:     models.ProviderPassword,
		Role:         role,
		Status:       models.StatusActive,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:      &actor.ID,
		Action:       models.AuditUserCreated,
		ResourceType: "profile",
		ResourceID:   &profile.ID,
		Details:      map[string]string{"email": email, "role": string(role)},
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	})

	return profile, nil
}

// FindOrCreateFromOAuth resolves an OAuth identity to a profile,
// provisioning a default one (user/active) when none exists.
func (s *AuthService) FindOrCreateFromOAuth(ctx context.Context, email, name, avatarURL, provider, providerID string) (*models.Profile, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err == nil {
		if err := statusError(profile.Status); err != nil {
			return nil, err
		}
		return profile, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	var avatar *string
	if avatarURL != "" {
		avatar = &avatarURL
	}

	return s.profiles.Create(ctx, CreateProfileParams{
		Email:      email,
		Name:       name,
		Provider:   provider,
		ProviderID: &providerID,
		AvatarURL:  avatar,
		Role:       models.RoleUser,
		Status:     models.StatusActive,
	})
}

func (s *AuthService) isLockedOut(ctx context.Context, email string) (bool, error) {
	if s.limiter == nil {
		return false, nil
	}
	failures, err := s.limiter.Failures(ctx, email)
	if err != nil {
		return false, err
	}
	return failures >= s.settings.MaxLoginAttempts(ctx), nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string, meta RequestMeta) {
	if s.limiter != nil {
		if _, err := s.limiter.RecordFailure(ctx, email); err != nil {
			s.logger.Warn("failed to record login failure", zap.Error(err))
		}
	}
	s.audit.Record(ctx, AuditEntry{
		Action:       models.AuditLoginFailed,
		ResourceType: "profile",
		Details:      map[string]string{"email": email},
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	})
}

func statusError(status models.Status) error {
	switch status {
	case models.StatusActive:
		return nil
	case models.StatusSuspended:
		return ErrAccountSuspended
	case models.StatusBanned:
		return ErrAccountBanned
	case models.StatusPending:
		return ErrAccountPending
	default:
		return ErrInvalidStatus
	}
}

// PromoteToSuperAdmin is the bootstrap path used by cmd/promote-admin.
func (s *AuthService) PromoteToSuperAdmin(ctx context.Context, email string) (*models.Profile, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	role := models.RoleSuperAdmin
	status := models.StatusActive
	return s.profiles.UpdateRoleStatus(ctx, profile.ID, &role, &status)
}

// ChangeRoleStatus applies an admin's role/status mutation with the
// hierarchy rules: only a super admin may grant or revoke super_admin,
// and the last active super admin cannot be demoted or deactivated.
func (s *AuthService) ChangeRoleStatus(ctx context.Context, actor *models.Profile, targetID uuid.UUID, role *models.Role, status *models.Status, meta RequestMeta) (*models.Profile, error) {
	if !actor.HasRole(models.RoleAdmin) {
		return nil, ErrPermissionDenied
	}
	if role != nil && !role.Valid() {
		return nil, ErrInvalidRole
	}
	if status != nil && !status.Valid() {
		return nil, ErrInvalidStatus
	}

	target, err := s.profiles.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	touchesSuper := target.Role == models.RoleSuperAdmin ||
		(role != nil && *role == models.RoleSuperAdmin)
	if touchesSuper && !actor.HasRole(models.RoleSuperAdmin) {
		return nil, ErrPermissionDenied
	}

	demotesSuper := target.Role == models.RoleSuperAdmin &&
		((role != nil && *role != models.RoleSuperAdmin) ||
			(status != nil && *status != models.StatusActive))
	if demotesSuper {
		count, err := s.profiles.CountSuperAdmins(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count super admins: %w", err)
		}
		if count <= 1 {
			return nil, ErrLastSuperAdmin
		}
	}

	updated, err := s.profiles.UpdateRoleStatus(ctx, targetID, role, status)
	if err != nil {
		return nil, err
	}

	details := map[string]string{}
	if role != nil {
		details["role"] = string(*role)
	}
	if status != nil {
		details["status"] = string(*status)
	}
	s.audit.Record(ctx, AuditEntry{
		ActorID:      &actor.ID,
		Action:       models.AuditUserUpdated,
		ResourceType: "profile",
		ResourceID:   &targetID,
		Details:      details,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	})

	return updated, nil
}

// DeleteUser removes a profile. Super admin only; self-deletion is
// rejected so an instance cannot lock itself out.
func (s *AuthService) DeleteUser(ctx context.Context, actor *models.Profile, targetID uuid.UUID, meta RequestMeta) error {
	if !actor.HasRole(models.RoleSuperAdmin) {
		return ErrPermissionDenied
	}
	if actor.ID == targetID {
		return ErrPermissionDenied
	}

	if err := s.profiles.Delete(ctx, targetID); err != nil {
		return err
	}

	s.audit.Record(ctx, AuditEntry{
		ActorID:      &actor.ID,
		Action:       models.AuditUserDeleted,
		ResourceType: "profile",
		ResourceID:   &targetID,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	})
	return nil
}
