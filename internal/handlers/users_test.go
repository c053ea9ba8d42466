package handlers

import (
	"net/http"
	"testing"

	"github.com/dstanic/folio-api/internal/middleware"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/dstanic/folio-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// setupUsersTest wires the handler behind the same auth and role
// guards the server uses, with the actor's profile served by the mock.
func setupUsersTest(t *testing.T, actor *models.Profile) (*testutil.MockAuthService, *testutil.MockProfileService, *testutil.HTTPTestClient, map[string]string) {
	t.Helper()
	mockAuth := new(testutil.MockAuthService)
	mockProfiles := new(testutil.MockProfileService)
	handler := NewUsersHandler(mockAuth, mockProfiles)

	jwtSvc := testutil.TestJWTService()
	token := testutil.GenerateTestToken(t, actor.ID, actor.Email, actor.Role)
	mockProfiles.On("GetByID", mock.Anything, actor.ID).Return(actor, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Use(middleware.RequireRole(mockProfiles, models.RoleAdmin))
	app.Get("/admin/users", handler.List)
	app.Post("/admin/users", handler.Create)
	app.Patch("/admin/users/:id", handler.Update)
	app.Delete("/admin/users/:id", handler.Delete)

	headers := map[string]string{"Authorization": testutil.AuthHeader(token)}
	return mockAuth, mockProfiles, testutil.NewHTTPTestClient(t, app), headers
}

func adminActor() *models.Profile {
	return &models.Profile{
		ID:     uuid.New(),
		Email:  "admin@example.com",
		Role:   models.RoleAdmin,
		Status: models.StatusActive,
	}
}

func superActor() *models.Profile {
	actor := adminActor()
	actor.Email = "root@example.com"
	actor.Role = models.RoleSuperAdmin
	return actor
}

func TestUsersHandler_List(t *testing.T) {
	actor := adminActor()
	_, mockProfiles, client, headers := setupUsersTest(t, actor)

	mockProfiles.On("List", mock.Anything, "", "").Return([]models.Profile{*actor}, nil)

	rec := client.GET("/admin/users", headers)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp []dto.ProfileResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Len(t, resp, 1)
	assert.True(t, resp[0].IsAdmin)
	assert.False(t, resp[0].IsSuperAdmin)
}

func TestUsersHandler_List_EditorBlockedByGuard(t *testing.T) {
	actor := adminActor()
	actor.Role = models.RoleEditor
	_, _, client, headers := setupUsersTest(t, actor)

	rec := client.GET("/admin/users", headers)

	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestUsersHandler_Create(t *testing.T) {
	actor := adminActor()
	mockAuth, _, client, headers := setupUsersTest(t, actor)

	created := &models.Profile{
		ID:     uuid.New(),
		Email:  "editor@example.com",
		Name:   "Ed",
		Role:   models.RoleEditor,
		Status: models.StatusActive,
	}
	mockAuth.On("CreateUser", mock.Anything, actor, "editor@example.com", "longenough", "Ed",
		models.RoleEditor, mock.Anything).Return(created, nil)

	rec := client.POST("/admin/users", dto.CreateUserRequest{
		Email:    "editor@example.com",
		Password: "longenough",
		Name:     "Ed",
		Role:     "editor",
	}, headers)

	testutil.AssertStatus(t, rec, http.StatusCreated)
	mockAuth.AssertExpectations(t)
}

func TestUsersHandler_Create_InvalidRoleRejected(t *testing.T) {
	actor := adminActor()
	_, _, client, headers := setupUsersTest(t, actor)

	rec := client.POST("/admin/users", dto.CreateUserRequest{
		Email:    "x@example.com",
		Password: "longenough",
		Name:     "X",
		Role:     "owner",
	}, headers)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestUsersHandler_Create_SuperAdminGrantDenied(t *testing.T) {
	actor := adminActor()
	mockAuth, _, client, headers := setupUsersTest(t, actor)

	mockAuth.On("CreateUser", mock.Anything, actor, "root2@example.com", "longenough", "Root",
		models.RoleSuperAdmin, mock.Anything).Return(nil, services.ErrPermissionDenied)

	rec := client.POST("/admin/users", dto.CreateUserRequest{
		Email:    "root2@example.com",
		Password: "longenough",
		Name:     "Root",
		Role:     "super_admin",
	}, headers)

	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestUsersHandler_Update_LastSuperAdminConflict(t *testing.T) {
	actor := superActor()
	mockAuth, _, client, headers := setupUsersTest(t, actor)
	targetID := uuid.New()

	role := models.RoleAdmin
	mockAuth.On("ChangeRoleStatus", mock.Anything, actor, targetID, &role, (*models.Status)(nil),
		mock.Anything).Return(nil, services.ErrLastSuperAdmin)

	roleStr := "admin"
	rec := client.PATCH("/admin/users/"+targetID.String(), dto.UpdateUserRequest{Role: &roleStr}, headers)

	testutil.AssertStatus(t, rec, http.StatusConflict)
}

func TestUsersHandler_Update_NothingToUpdate(t *testing.T) {
	actor := adminActor()
	_, _, client, headers := setupUsersTest(t, actor)

	rec := client.PATCH("/admin/users/"+uuid.New().String(), dto.UpdateUserRequest{}, headers)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestUsersHandler_Delete(t *testing.T) {
	actor := superActor()
	mockAuth, _, client, headers := setupUsersTest(t, actor)
	targetID := uuid.New()

	mockAuth.On("DeleteUser", mock.Anything, actor, targetID, mock.Anything).Return(nil)

	rec := client.DELETE("/admin/users/"+targetID.String(), headers)

	testutil.AssertStatus(t, rec, http.StatusOK)
	mockAuth.AssertExpectations(t)
}

func TestUsersHandler_Delete_InvalidID(t *testing.T) {
	actor := superActor()
	_, _, client, headers := setupUsersTest(t, actor)

	rec := client.DELETE("/admin/users/not-a-uuid", headers)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}
