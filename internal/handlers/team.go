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

type TeamHandler struct {
	teamService TeamServiceInterface
}

func NewTeamHandler(teamService TeamServiceInterface) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) memberResponse(m *models.TeamMember) dto.TeamMemberResponse {
	return dto.TeamMemberResponse{
		ID:           m.ID,
		Name:         m.Name,
		Title:        m.Title,
		Bio:          m.Bio,
		PhotoID:      m.PhotoID,
		DisplayOrder: m.DisplayOrder,
		Visible:      m.Visible,
		CreatedAt:    m.CreatedAt,
	}
}

func (h *TeamHandler) listResponse(members []models.TeamMember) []dto.TeamMemberResponse {
	resp := make([]dto.TeamMemberResponse, 0, len(members))
	for i := range members {
		resp = append(resp, h.memberResponse(&members[i]))
	}
	return resp
}

// ListVisible is the public team section.
func (h *TeamHandler) ListVisible(c *drift.Context) {
	members, err := h.teamService.List(context.Background(), true)
	if err != nil {
		c.InternalServerError("failed to list team members")
		return
	}
	_ = c.JSON(200, h.listResponse(members))
}

// ListAll is the admin listing and includes hidden members.
func (h *TeamHandler) ListAll(c *drift.Context) {
	members, err := h.teamService.List(context.Background(), false)
	if err != nil {
		c.InternalServerError("failed to list team members")
		return
	}
	_ = c.JSON(200, h.listResponse(members))
}

func (h *TeamHandler) bindParams(c *drift.Context) (*services.TeamMemberParams, bool) {
	var req dto.TeamMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return nil, false
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("invalid team member: " + err.Error())
		return nil, false
	}

	return &services.TeamMemberParams{
		Name:         req.Name,
		Title:        req.Title,
		Bio:          req.Bio,
		PhotoID:      req.PhotoID,
		DisplayOrder: req.DisplayOrder,
		Visible:      req.Visible,
	}, true
}

func (h *TeamHandler) Create(c *drift.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	member, err := h.teamService.Create(context.Background(), *params)
	if err != nil {
		c.InternalServerError("failed to create team member")
		return
	}
	_ = c.JSON(201, h.memberResponse(member))
}

func (h *TeamHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team member ID")
		return
	}

	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	member, err := h.teamService.Update(context.Background(), id, *params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.NotFound("team member not found")
			return
		}
		c.InternalServerError("failed to update team member")
		return
	}
	_ = c.JSON(200, h.memberResponse(member))
}

func (h *TeamHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team member ID")
		return
	}

	if err := h.teamService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.NotFound("team member not found")
			return
		}
		c.InternalServerError("failed to delete team member")
		return
	}
	_ = c.JSON(200, map[string]string{"message": "team member deleted"})
}
