package models

import (
	"time"

	"github.com/google/uuid"
)

type HeroContent struct {
	Headline          string     `json:"headline"`
	Subheadline       string     `json:"subheadline"`
	CTALabel          string     `json:"cta_label"`
	CTAURL            string     `json:"cta_url"`
	BackgroundImageID *uuid.UUID `json:"background_image_id,omitempty"`
	UpdatedBy         *uuid.UUID `json:"updated_by,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type AboutContent struct {
	Heading    string     `json:"heading"`
	Body       string     `json:"body"`
	Skills     []string   `json:"skills"`
	PortraitID *uuid.UUID `json:"portrait_id,omitempty"`
	UpdatedBy  *uuid.UUID `json:"updated_by,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type Project struct {
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

type TeamMember struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Title        string     `json:"title"`
	Bio          string     `json:"bio"`
	PhotoID      *uuid.UUID `json:"photo_id,omitempty"`
	DisplayOrder int        `json:"display_order"`
	Visible      bool       `json:"visible"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
