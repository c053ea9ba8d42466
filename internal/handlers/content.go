package handlers

import (
	"context"

	"github.com/dstanic/folio-api/internal/middleware"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// ContentHandler serves the hero and about sections.
type ContentHandler struct {
	contentService ContentServiceInterface
	auditService   AuditServiceInterface
}

func NewContentHandler(contentService ContentServiceInterface, auditService AuditServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		auditService:   auditService,
	}
}

func (h *ContentHandler) heroResponse(hero *models.HeroContent) dto.HeroResponse {
	resp := dto.HeroResponse{
		Headline:          hero.Headline,
		Subheadline:       hero.Subheadline,
		CTALabel:          hero.CTALabel,
		CTAURL:            hero.CTAURL,
		BackgroundImageID: hero.BackgroundImageID,
		UpdatedAt:         hero.UpdatedAt,
	}
	return resp
}

func (h *ContentHandler) GetHero(c *drift.Context) {
	hero, err := h.contentService.GetHero(context.Background())
	if err != nil {
		c.InternalServerError("failed to load hero content")
		return
	}
	_ = c.JSON(200, h.heroResponse(hero))
}

func (h *ContentHandler) UpdateHero(c *drift.Context) {
	userID := middleware.GetUserID(c)

	var req dto.UpdateHeroRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("invalid hero content: " + err.Error())
		return
	}

	hero, err := h.contentService.UpdateHero(context.Background(), services.UpdateHeroParams{
		Headline:          req.Headline,
		Subheadline:       req.Subheadline,
		CTALabel:          req.CTALabel,
		CTAURL:            req.CTAURL,
		BackgroundImageID: req.BackgroundImageID,
	}, userID)
	if err != nil {
		c.InternalServerError("failed to update hero content")
		return
	}

	h.auditService.Record(context.Background(), services.AuditEntry{
		ActorID:      &userID,
		Action:       models.AuditContentUpdated,
		ResourceType: "hero_content",
		IPAddress:    clientMeta(c).IPAddress,
		UserAgent:    clientMeta(c).UserAgent,
	})

	_ = c.JSON(200, h.heroResponse(hero))
}

func (h *ContentHandler) aboutResponse(about *models.AboutContent) dto.AboutResponse {
	skills := about.Skills
	if skills == nil {
		skills = []string{}
	}
	return dto.AboutResponse{
		Heading:    about.Heading,
		Body:       about.Body,
		Skills:     skills,
		PortraitID: about.PortraitID,
		UpdatedAt:  about.UpdatedAt,
	}
}

func (h *ContentHandler) GetAbout(c *drift.Context) {
	about, err := h.contentService.GetAbout(context.Background())
	if err != nil {
		c.InternalServerError("failed to load about content")
		return
	}
	_ = c.JSON(200, h.aboutResponse(about))
}

func (h *ContentHandler) UpdateAbout(c *drift.Context) {
	userID := middleware.GetUserID(c)

	var req dto.UpdateAboutRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("invalid about content: " + err.Error())
		return
	}

	about, err := h.contentService.UpdateAbout(context.Background(), services.UpdateAboutParams{
		Heading:    req.Heading,
		Body:       req.Body,
		Skills:     req.Skills,
		PortraitID: req.PortraitID,
	}, userID)
	if err != nil {
		c.InternalServerError("failed to update about content")
		return
	}

	h.auditService.Record(context.Background(), services.AuditEntry{
		ActorID:      &userID,
		Action:       models.AuditContentUpdated,
		ResourceType: "about_content",
		IPAddress:    clientMeta(c).IPAddress,
		UserAgent:    clientMeta(c).UserAgent,
	})

	_ = c.JSON(200, h.aboutResponse(about))
}
