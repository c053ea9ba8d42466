package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProjectResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Summary      string     `json:"summary"`
	Body         string     `json:"body"`
	CoverImageID *uuid.UUID `json:"cover_image_id,omitempty"`
	Tags         []string   `json:"tags"`
	LiveURL      *string    `json:"live_url,omitempty"`
	RepoURL      *string    `json:"repo_url,omitempty"`
	DisplayOrder int        `json:"display_order"`
	Published    bool       `json:"published"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ProjectRequest struct {
	Title        string     `json:"title" validate:"required,max=255"`
	Slug         string     `json:"slug" validate:"required,max=255"`
	Summary      string     `json:"summary"`
	Body         string     `json:"body"`
	CoverImageID *uuid.UUID `json:"cover_image_id,omitempty"`
	Tags         []string   `json:"tags"`
	LiveURL      *string    `json:"live_url,omitempty" validate:"omitempty,url"`
	RepoURL      *string    `json:"repo_url,omitempty" validate:"omitempty,url"`
	DisplayOrder int        `json:"display_order"`
	Published    bool       `json:"published"`
}

type ReorderProjectsRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}
