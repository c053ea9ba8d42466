package middleware

import (
	"context"
	"strings"

	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	ProfileKey   = "profile"
)

// ProfileLookup is the slice of ProfileService the guards need.
type ProfileLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)

		c.Next()
	}
}

// RequireRole loads the caller's profile and rejects the request
// unless it holds at least min. The profile is fetched fresh rather
// than trusted from the token, so a suspension or demotion takes
// effect on the next request, not at token expiry. The loaded profile
// is stashed in the context for handlers.
func RequireRole(profiles ProfileLookup, min models.Role) drift.HandlerFunc {
	return func(c *drift.Context) {
		userID := GetUserID(c)
		if userID == uuid.Nil {
			c.Unauthorized("not authenticated")
			return
		}

		profile, err := profiles.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.Unauthorized("profile not found")
			return
		}

		if !profile.HasRole(min) {
			c.Forbidden("insufficient permissions")
			return
		}

		c.Set(ProfileKey, profile)
		c.Next()
	}
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

// GetProfile returns the profile loaded by RequireRole, or nil when
// the route has no role guard.
func GetProfile(c *drift.Context) *models.Profile {
	if p, ok := c.Get(ProfileKey); ok {
		if profile, ok := p.(*models.Profile); ok {
			return profile
		}
	}
	return nil
}
