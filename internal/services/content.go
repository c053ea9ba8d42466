package services

import (
	"context"
	"fmt"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
)

// ContentService manages the single-row hero and about sections.
type ContentService struct {
	db *database.DB
}

func NewContentService(db *database.DB) *ContentService {
	return &ContentService{db: db}
}

func (s *ContentService) GetHero(ctx context.Context) (*models.HeroContent, error) {
	var hero models.HeroContent
	err := s.db.Pool.QueryRow(ctx, `
		SELECT headline, subheadline, cta_label, cta_url, background_image_id, updated_by, updated_at
		FROM hero_content WHERE id = TRUE
	`).Scan(
		&hero.Headline, &hero.Subheadline, &hero.CTALabel, &hero.CTAURL,
		&hero.BackgroundImageID, &hero.UpdatedBy, &hero.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &hero, nil
}

type UpdateHeroParams struct {
	Headline          string
	Subheadline       string
	CTALabel          string
	CTAURL            string
	BackgroundImageID *uuid.UUID
}

func (s *ContentService) UpdateHero(ctx context.Context, params UpdateHeroParams, updatedBy uuid.UUID) (*models.HeroContent, error) {
	var hero models.HeroContent
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO hero_content (id, headline, subheadline, cta_label, cta_url, background_image_id, updated_by, updated_at)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE SET
			headline = $1, subheadline = $2, cta_label = $3, cta_url = $4,
			background_image_id = $5, updated_by = $6, updated_at = NOW()
		RETURNING headline, subheadline, cta_label, cta_url, background_image_id, updated_by, updated_at
	`, params.Headline, params.Subheadline, params.CTALabel, params.CTAURL,
		params.BackgroundImageID, updatedBy).Scan(
		&hero.Headline, &hero.Subheadline, &hero.CTALabel, &hero.CTAURL,
		&hero.BackgroundImageID, &hero.UpdatedBy, &hero.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update hero content: %w", err)
	}
	return &hero, nil
}

func (s *ContentService) GetAbout(ctx context.Context) (*models.AboutContent, error) {
	var about models.AboutContent
	err := s.db.Pool.QueryRow(ctx, `
		SELECT heading, body, skills, portrait_id, updated_by, updated_at
		FROM about_content WHERE id = TRUE
	`).Scan(
		&about.Heading, &about.Body, &about.Skills,
		&about.PortraitID, &about.UpdatedBy, &about.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &about, nil
}

type UpdateAboutParams struct {
	Heading    string
	Body       string
	Skills     []string
	PortraitID *uuid.UUID
}

func (s *ContentService) UpdateAbout(ctx context.Context, params UpdateAboutParams, updatedBy uuid.UUID) (*models.AboutContent, error) {
	skills := params.Skills
	if skills == nil {
		skills = []string{}
	}

	var about models.AboutContent
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO about_content (id, heading, body, skills, portrait_id, updated_by, updated_at)
		VALUES (TRUE, $1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE SET
			heading = $1, body = $2, skills = $3, portrait_id = $4,
			updated_by = $5, updated_at = NOW()
		RETURNING heading, body, skills, portrait_id, updated_by, updated_at
	`, params.Heading, params.Body, skills, params.PortraitID, updatedBy).Scan(
		&about.Heading, &about.Body, &about.Skills,
		&about.PortraitID, &about.UpdatedBy, &about.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update about content: %w", err)
	}
	return &about, nil
}
