package handlers

import (
	"context"
	"strconv"

	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type AuditHandler struct {
	auditService AuditServiceInterface
}

func NewAuditHandler(auditService AuditServiceInterface) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func auditResponse(l *models.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:           l.ID,
		ActorID:      l.ActorID,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Details:      l.Details,
		IPAddress:    l.IPAddress,
		UserAgent:    l.UserAgent,
		CreatedAt:    l.CreatedAt,
	}
}

func (h *AuditHandler) List(c *drift.Context) {
	filter := services.AuditFilter{
		Action: c.QueryParam("action"),
	}

	if actor := c.QueryParam("actor_id"); actor != "" {
		id, err := uuid.Parse(actor)
		if err != nil {
			c.BadRequest("invalid actor_id")
			return
		}
		filter.ActorID = &id
	}

	if limit := c.QueryParam("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			c.BadRequest("invalid limit")
			return
		}
		filter.Limit = n
	}

	if offset := c.QueryParam("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil {
			c.BadRequest("invalid offset")
			return
		}
		filter.Offset = n
	}

	logs, err := h.auditService.List(context.Background(), filter)
	if err != nil {
		c.InternalServerError("failed to list audit logs")
		return
	}

	resp := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		resp = append(resp, auditResponse(&logs[i]))
	}
	_ = c.JSON(200, resp)
}
