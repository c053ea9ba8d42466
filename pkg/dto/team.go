package dto

import (
	"time"

	"github.com/google/uuid"
)

type TeamMemberResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Title        string     `json:"title"`
	Bio          string     `json:"bio"`
	PhotoID      *uuid.UUID `json:"photo_id,omitempty"`
	PhotoURL     string     `json:"photo_url,omitempty"`
	DisplayOrder int        `json:"display_order"`
	Visible      bool       `json:"visible"`
	CreatedAt    time.Time  `json:"created_at"`
}

type TeamMemberRequest struct {
	Name         string     `json:"name" validate:"required,max=255"`
	Title        string     `json:"title" validate:"max=255"`
	Bio          string     `json:"bio"`
	PhotoID      *uuid.UUID `json:"photo_id,omitempty"`
	DisplayOrder int        `json:"display_order"`
	Visible      bool       `json:"visible"`
}
