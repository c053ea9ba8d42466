package dto

import (
	"time"

	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID          uuid.UUID     `json:"id"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
	AvatarURL   *string       `json:"avatar_url,omitempty"`
	Provider    string        `json:"provider"`
	Role        models.Role   `json:"role"`
	Status      models.Status `json:"status"`
	LastLoginAt *time.Time    `json:"last_login_at,omitempty"`
	LoginCount  int           `json:"login_count"`
	CreatedAt   time.Time     `json:"created_at"`

	models.RoleFlags
}

func NewProfileResponse(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		Name:        p.Name,
		AvatarURL:   p.AvatarURL,
		Provider:    p.Provider,
		Role:        p.Role,
		Status:      p.Status,
		LastLoginAt: p.LastLoginAt,
		LoginCount:  p.LoginCount,
		CreatedAt:   p.CreatedAt,
		RoleFlags:   p.RoleFlags(),
	}
}

type UpdateMeRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required,max=255"`
	Role     string `json:"role" validate:"required,oneof=user editor admin super_admin"`
}

type UpdateUserRequest struct {
	Role   *string `json:"role,omitempty" validate:"omitempty,oneof=user editor admin super_admin"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=active suspended pending banned"`
}
