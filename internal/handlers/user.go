package handlers

import (
	"context"

	"github.com/dstanic/folio-api/internal/middleware"
	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// MeHandler serves the signed-in user's own profile.
type MeHandler struct {
	profileService ProfileServiceInterface
}

func NewMeHandler(profileService ProfileServiceInterface) *MeHandler {
	return &MeHandler{profileService: profileService}
}

func (h *MeHandler) GetMe(c *drift.Context) {
	userID := middleware.GetUserID(c)

	profile, err := h.profileService.GetByID(context.Background(), userID)
	if err != nil {
		c.NotFound("profile not found")
		return
	}

	_ = c.JSON(200, dto.NewProfileResponse(profile))
}

func (h *MeHandler) UpdateMe(c *drift.Context) {
	userID := middleware.GetUserID(c)

	var req dto.UpdateMeRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("invalid profile update: " + err.Error())
		return
	}

	profile, err := h.profileService.UpdateSelf(context.Background(), userID, req.Name, req.AvatarURL)
	if err != nil {
		c.InternalServerError("failed to update profile")
		return
	}

	_ = c.JSON(200, dto.NewProfileResponse(profile))
}
