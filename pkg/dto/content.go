package dto

import (
	"time"

	"github.com/google/uuid"
)

type HeroResponse struct {
	Headline           string     `json:"headline"`
	Subheadline        string     `json:"subheadline"`
	CTALabel           string     `json:"cta_label"`
	CTAURL             string     `json:"cta_url"`
	BackgroundImageID  *uuid.UUID `json:"background_image_id,omitempty"`
	BackgroundImageURL string     `json:"background_image_url,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type UpdateHeroRequest struct {
	Headline          string     `json:"headline" validate:"max=255"`
	Subheadline       string     `json:"subheadline"`
	CTALabel          string     `json:"cta_label" validate:"max=100"`
	CTAURL            string     `json:"cta_url" validate:"omitempty,max=500"`
	BackgroundImageID *uuid.UUID `json:"background_image_id,omitempty"`
}

type AboutResponse struct {
	Heading     string     `json:"heading"`
	Body        string     `json:"body"`
	Skills      []string   `json:"skills"`
	PortraitID  *uuid.UUID `json:"portrait_id,omitempty"`
	PortraitURL string     `json:"portrait_url,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type UpdateAboutRequest struct {
	Heading    string     `json:"heading" validate:"max=255"`
	Body       string     `json:"body"`
	Skills     []string   `json:"skills"`
	PortraitID *uuid.UUID `json:"portrait_id,omitempty"`
}
