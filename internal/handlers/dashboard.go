package handlers

import (
	"context"

	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// DashboardHandler aggregates the counters shown on the admin landing
// screen.
type DashboardHandler struct {
	projectService ProjectServiceInterface
	messageService MessageServiceInterface
	mediaService   MediaServiceInterface
	profileService ProfileServiceInterface
	auditService   AuditServiceInterface
}

func NewDashboardHandler(
	projectService ProjectServiceInterface,
	messageService MessageServiceInterface,
	mediaService MediaServiceInterface,
	profileService ProfileServiceInterface,
	auditService AuditServiceInterface,
) *DashboardHandler {
	return &DashboardHandler{
		projectService: projectService,
		messageService: messageService,
		mediaService:   mediaService,
		profileService: profileService,
		auditService:   auditService,
	}
}

func (h *DashboardHandler) Get(c *drift.Context) {
	ctx := context.Background()

	projectCount, err := h.projectService.Count(ctx)
	if err != nil {
		c.InternalServerError("failed to load dashboard")
		return
	}

	unread, err := h.messageService.CountUnread(ctx)
	if err != nil {
		c.InternalServerError("failed to load dashboard")
		return
	}

	mediaCount, err := h.mediaService.Count(ctx)
	if err != nil {
		c.InternalServerError("failed to load dashboard")
		return
	}

	userCount, err := h.profileService.Count(ctx)
	if err != nil {
		c.InternalServerError("failed to load dashboard")
		return
	}

	recent, err := h.auditService.Recent(ctx, 10)
	if err != nil {
		c.InternalServerError("failed to load dashboard")
		return
	}

	activity := make([]dto.AuditLogResponse, 0, len(recent))
	for i := range recent {
		activity = append(activity, auditResponse(&recent[i]))
	}

	_ = c.JSON(200, dto.DashboardResponse{
		ProjectCount:   projectCount,
		UnreadMessages: unread,
		MediaCount:     mediaCount,
		UserCount:      userCount,
		RecentActivity: activity,
	})
}
