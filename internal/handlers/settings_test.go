package handlers

import (
	"net/http"
	"testing"

	"github.com/dstanic/folio-api/internal/middleware"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/dstanic/folio-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupSettingsTest(t *testing.T, actor *models.Profile) (*testutil.MockSettingsService, *testutil.MockAuditService, *testutil.HTTPTestClient, map[string]string) {
	t.Helper()
	mockSettings := new(testutil.MockSettingsService)
	mockAudit := new(testutil.MockAuditService)
	mockProfiles := new(testutil.MockProfileService)
	handler := NewSettingsHandler(mockSettings, mockAudit)

	jwtSvc := testutil.TestJWTService()
	token := testutil.GenerateTestToken(t, actor.ID, actor.Email, actor.Role)
	mockProfiles.On("GetByID", mock.Anything, actor.ID).Return(actor, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Use(middleware.RequireRole(mockProfiles, models.RoleAdmin))
	app.Get("/admin/settings", handler.List)
	app.Get("/admin/settings/:key", handler.Get)
	app.Put("/admin/settings/:key", handler.Update)

	headers := map[string]string{"Authorization": testutil.AuthHeader(token)}
	return mockSettings, mockAudit, testutil.NewHTTPTestClient(t, app), headers
}

func TestSettingsHandler_List(t *testing.T) {
	actor := adminActor()
	mockSettings, _, client, headers := setupSettingsTest(t, actor)

	mockSettings.On("List", mock.Anything).Return([]models.Setting{
		{Key: "site_title", Value: "Folio"},
	}, nil)

	rec := client.GET("/admin/settings", headers)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp []dto.SettingResponse
	testutil.ParseJSON(t, rec, &resp)
	assert.Len(t, resp, 1)
	assert.Equal(t, "site_title", resp[0].Key)
}

func TestSettingsHandler_Update_SiteSettingByAdmin(t *testing.T) {
	actor := adminActor()
	mockSettings, mockAudit, client, headers := setupSettingsTest(t, actor)

	mockSettings.On("Set", mock.Anything, "site_title", "New Title", actor.ID).
		Return(&models.Setting{Key: "site_title", Value: "New Title"}, nil)
	mockAudit.On("Record", mock.Anything, mock.Anything).Return()

	rec := client.PUT("/admin/settings/site_title", dto.UpdateSettingRequest{Value: "New Title"}, headers)

	testutil.AssertStatus(t, rec, http.StatusOK)
	mockSettings.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}

func TestSettingsHandler_Update_SystemKeyNeedsSuperAdmin(t *testing.T) {
	actor := adminActor()
	mockSettings, _, client, headers := setupSettingsTest(t, actor)

	rec := client.PUT("/admin/settings/password_min_length", dto.UpdateSettingRequest{Value: "12"}, headers)

	testutil.AssertStatus(t, rec, http.StatusForbidden)
	mockSettings.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSettingsHandler_Update_SystemKeyBySuperAdmin(t *testing.T) {
	actor := superActor()
	mockSettings, mockAudit, client, headers := setupSettingsTest(t, actor)

	mockSettings.On("Set", mock.Anything, "password_min_length", "12", actor.ID).
		Return(&models.Setting{Key: "password_min_length", Value: "12"}, nil)
	mockAudit.On("Record", mock.Anything, mock.Anything).Return()

	rec := client.PUT("/admin/settings/password_min_length", dto.UpdateSettingRequest{Value: "12"}, headers)

	testutil.AssertStatus(t, rec, http.StatusOK)
	mockSettings.AssertExpectations(t)
}

func TestSettingsHandler_Update_MissingValue(t *testing.T) {
	actor := superActor()
	_, _, client, headers := setupSettingsTest(t, actor)

	rec := client.PUT("/admin/settings/site_title", map[string]string{}, headers)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}
