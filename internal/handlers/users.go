package handlers

import (
	"context"
	"errors"

	"github.com/dstanic/folio-api/internal/middleware"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

// UsersHandler covers the admin user management screens.
type UsersHandler struct {
	authService    AuthServiceInterface
	profileService ProfileServiceInterface
}

func NewUsersHandler(authService AuthServiceInterface, profileService ProfileServiceInterface) *UsersHandler {
	return &UsersHandler{
		authService:    authService,
		profileService: profileService,
	}
}

func (h *UsersHandler) List(c *drift.Context) {
	profiles, err := h.profileService.List(context.Background(),
		c.QueryParam("role"), c.QueryParam("status"))
	if err != nil {
		c.InternalServerError("failed to list users")
		return
	}

	resp := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, dto.NewProfileResponse(&profiles[i]))
	}
	_ = c.JSON(200, resp)
}

func (h *UsersHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user ID")
		return
	}

	profile, err := h.profileService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, dto.NewProfileResponse(profile))
}

func (h *UsersHandler) Create(c *drift.Context) {
	actor := middleware.GetProfile(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("invalid user request: " + err.Error())
		return
	}

	profile, err := h.authService.CreateUser(context.Background(), actor,
		req.Email, req.Password, req.Name, models.Role(req.Role), clientMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			c.Forbidden("not allowed to create this user")
		case errors.Is(err, services.ErrPasswordTooShort):
			c.BadRequest("password is too short")
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(409, map[string]string{"error": "email is already registered"})
		case errors.Is(err, services.ErrInvalidRole):
			c.BadRequest("invalid role")
		default:
			c.InternalServerError("failed to create user")
		}
		return
	}

	_ = c.JSON(201, dto.NewProfileResponse(profile))
}

func (h *UsersHandler) Update(c *drift.Context) {
	actor := middleware.GetProfile(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user ID")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("invalid user update: " + err.Error())
		return
	}
	if req.Role == nil && req.Status == nil {
		c.BadRequest("nothing to update")
		return
	}

	var role *models.Role
	if req.Role != nil {
		r := models.Role(*req.Role)
		role = &r
	}
	var status *models.Status
	if req.Status != nil {
		s := models.Status(*req.Status)
		status = &s
	}

	profile, err := h.authService.ChangeRoleStatus(context.Background(), actor, id, role, status, clientMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			c.Forbidden("not allowed to change this user")
		case errors.Is(err, services.ErrLastSuperAdmin):
			c.JSON(409, map[string]string{"error": "cannot demote the last super admin"})
		case errors.Is(err, services.ErrInvalidRole), errors.Is(err, services.ErrInvalidStatus):
			c.BadRequest("invalid role or status")
		default:
			c.NotFound("user not found")
		}
		return
	}

	_ = c.JSON(200, dto.NewProfileResponse(profile))
}

func (h *UsersHandler) Delete(c *drift.Context) {
	actor := middleware.GetProfile(c)
	if actor == nil {
		c.Unauthorized("not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user ID")
		return
	}

	if err := h.authService.DeleteUser(context.Background(), actor, id, clientMeta(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrPermissionDenied):
			c.Forbidden("not allowed to delete this user")
		case errors.Is(err, services.ErrLastSuperAdmin):
			c.JSON(409, map[string]string{"error": "cannot delete the last super admin"})
		default:
			c.NotFound("user not found")
		}
		return
	}

	_ = c.JSON(200, map[string]string{"message": "user deleted"})
}
