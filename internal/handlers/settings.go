package handlers

import (
	"context"

	"github.com/dstanic/folio-api/internal/middleware"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type SettingsHandler struct {
	settingsService SettingsServiceInterface
	auditService    AuditServiceInterface
}

func NewSettingsHandler(settingsService SettingsServiceInterface, auditService AuditServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		auditService:    auditService,
	}
}

func settingResponse(s *models.Setting) dto.SettingResponse {
	return dto.SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		UpdatedAt: s.UpdatedAt,
	}
}

func (h *SettingsHandler) List(c *drift.Context) {
	settings, err := h.settingsService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to list settings")
		return
	}

	resp := make([]dto.SettingResponse, 0, len(settings))
	for i := range settings {
		resp = append(resp, settingResponse(&settings[i]))
	}
	_ = c.JSON(200, resp)
}

func (h *SettingsHandler) Get(c *drift.Context) {
	setting, err := h.settingsService.Get(context.Background(), c.Param("key"))
	if err != nil {
		c.NotFound("setting not found")
		return
	}
	_ = c.JSON(200, settingResponse(setting))
}

// Update writes a setting. System flags are gated to super admins;
// everything else needs admin.
func (h *SettingsHandler) Update(c *drift.Context) {
	actor := middleware.GetProfile(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	key := c.Param("key")
	if models.SystemSettingKeys[key] && !actor.HasRole(models.RoleSuperAdmin) {
		c.Forbidden("only a super admin can change system settings")
		return
	}

	var req dto.UpdateSettingRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("value is required")
		return
	}

	setting, err := h.settingsService.Set(context.Background(), key, req.Value, actor.ID)
	if err != nil {
		c.InternalServerError("failed to update setting")
		return
	}

	h.auditService.Record(context.Background(), services.AuditEntry{
		ActorID:      &actor.ID,
		Action:       models.AuditSettingChanged,
		ResourceType: "site_setting",
		Details:      map[string]string{"key": key, "value": req.Value},
		IPAddress:    clientMeta(c).IPAddress,
		UserAgent:    clientMeta(c).UserAgent,
	})

	_ = c.JSON(200, settingResponse(setting))
}
