package handlers

import (
	"context"
	"errors"

	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/m1z23r/drift/pkg/drift"
)

type ProjectsHandler struct {
	projectService ProjectServiceInterface
}

func NewProjectsHandler(projectService ProjectServiceInterface) *ProjectsHandler {
	return &ProjectsHandler{projectService: projectService}
}

func projectResponse(p *models.Project) dto.ProjectResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Summary:      p.Summary,
		Body:         p.Body,
		CoverImageID: p.CoverImageID,
		Tags:         tags,
		LiveURL:      p.LiveURL,
		RepoURL:      p.RepoURL,
		DisplayOrder: p.DisplayOrder,
		Published:    p.Published,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func projectListResponse(projects []models.Project) []dto.ProjectResponse {
	resp := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, projectResponse(&projects[i]))
	}
	return resp
}

// ListPublished is the public portfolio listing.
func (h *ProjectsHandler) ListPublished(c *drift.Context) {
	projects, err := h.projectService.ListPublished(context.Background())
	if err != nil {
		c.InternalServerError("failed to list projects")
		return
	}
	_ = c.JSON(200, projectListResponse(projects))
}

// GetBySlug serves a single published project on the public site.
func (h *ProjectsHandler) GetBySlug(c *drift.Context) {
	project, err := h.projectService.GetBySlug(context.Background(), c.Param("slug"))
	if err != nil {
		c.NotFound("project not found")
		return
	}
	_ = c.JSON(200, projectResponse(project))
}

// ListAll is the admin listing and includes drafts.
func (h *ProjectsHandler) ListAll(c *drift.Context) {
	projects, err := h.projectService.ListAll(context.Background())
	if err != nil {
		c.InternalServerError("failed to list projects")
		return
	}
	_ = c.JSON(200, projectListResponse(projects))
}

func (h *ProjectsHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project ID")
		return
	}

	project, err := h.projectService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("project not found")
		return
	}
	_ = c.JSON(200, projectResponse(project))
}

func (h *ProjectsHandler) bindParams(c *drift.Context) (*services.ProjectParams, bool) {
	var req dto.ProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return nil, false
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("invalid project: " + err.Error())
		return nil, false
	}

	return &services.ProjectParams{
		Title:        req.Title,
		Slug:         req.Slug,
		Summary:      req.Summary,
		Body:         req.Body,
		CoverImageID: req.CoverImageID,
		Tags:         req.Tags,
		LiveURL:      req.LiveURL,
		RepoURL:      req.RepoURL,
		DisplayOrder: req.DisplayOrder,
		Published:    req.Published,
	}, true
}

func (h *ProjectsHandler) Create(c *drift.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	project, err := h.projectService.Create(context.Background(), *params)
	if err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			c.JSON(409, map[string]string{"error": "slug is already in use"})
			return
		}
		c.InternalServerError("failed to create project")
		return
	}
	_ = c.JSON(201, projectResponse(project))
}

func (h *ProjectsHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project ID")
		return
	}

	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	project, err := h.projectService.Update(context.Background(), id, *params)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSlugTaken):
			c.JSON(409, map[string]string{"error": "slug is already in use"})
		case errors.Is(err, pgx.ErrNoRows):
			c.NotFound("project not found")
		default:
			c.InternalServerError("failed to update project")
		}
		return
	}
	_ = c.JSON(200, projectResponse(project))
}

func (h *ProjectsHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project ID")
		return
	}

	if err := h.projectService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.NotFound("project not found")
			return
		}
		c.InternalServerError("failed to delete project")
		return
	}
	_ = c.JSON(200, map[string]string{"message": "project deleted"})
}

func (h *ProjectsHandler) Reorder(c *drift.Context) {
	var req dto.ReorderProjectsRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("ids are required")
		return
	}

	if err := h.projectService.Reorder(context.Background(), req.IDs); err != nil {
		c.InternalServerError("failed to reorder projects")
		return
	}
	_ = c.JSON(200, map[string]string{"message": "projects reordered"})
}
