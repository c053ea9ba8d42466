package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/dstanic/folio-api/internal/middleware"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupMediaTest(t *testing.T) (*testutil.MockMediaService, *testutil.MockAuditService, http.Handler, string) {
	t.Helper()
	mockMedia := new(testutil.MockMediaService)
	mockAudit := new(testutil.MockAuditService)
	handler := NewMediaHandler(mockMedia, mockAudit, "http://localhost:8080", 10<<20)

	jwtSvc := testutil.TestJWTService()
	userID := uuid.New()
	token := testutil.GenerateTestToken(t, userID, "editor@example.com", models.RoleEditor)

	app := drift.New()
	app.Get("/media/:fileName", handler.Serve)
	protected := app.Group("/admin")
	protected.Use(middleware.Auth(jwtSvc))
	protected.Post("/media", handler.Upload)

	return mockMedia, mockAudit, app, token
}

func multipartBody(t *testing.T, fieldName, fileName, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write multipart content: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestMediaHandler_Upload(t *testing.T) {
	mockMedia, mockAudit, app, token := setupMediaTest(t)

	stored := &models.MediaFile{
		ID:           uuid.New(),
		FileName:     "abc123.png",
		OriginalName: "photo.png",
		MimeType:     "image/png",
		SizeBytes:    9,
	}
	mockMedia.On("Upload", mock.Anything, "photo.png", "image/png", int64(9), mock.Anything, mock.Anything).
		Return(stored, nil)
	mockAudit.On("Record", mock.Anything, mock.Anything).Return()

	body, contentType := multipartBody(t, "file", "photo.png", "image/png", "png bytes")
	req := httptest.NewRequest(http.MethodPost, "/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", testutil.AuthHeader(token))

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)

	var resp map[string]interface{}
	testutil.ParseJSON(t, rec, &resp)
	assert.Equal(t, "http://localhost:8080/media/abc123.png", resp["url"])
	mockMedia.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}

func TestMediaHandler_Upload_UnsupportedType(t *testing.T) {
	mockMedia, _, app, token := setupMediaTest(t)

	mockMedia.On("Upload", mock.Anything, "script.sh", "application/x-sh", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, services.ErrUnsupportedType)

	body, contentType := multipartBody(t, "file", "script.sh", "application/x-sh", "#!/bin/sh")
	req := httptest.NewRequest(http.MethodPost, "/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", testutil.AuthHeader(token))

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnsupportedMediaType)
}

func TestMediaHandler_Upload_MissingFilePart(t *testing.T) {
	_, _, app, token := setupMediaTest(t)

	body, contentType := multipartBody(t, "attachment", "photo.png", "image/png", "png bytes")
	req := httptest.NewRequest(http.MethodPost, "/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", testutil.AuthHeader(token))

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestMediaHandler_Serve(t *testing.T) {
	mockMedia, _, app, _ := setupMediaTest(t)

	media := &models.MediaFile{
		FileName:  "abc123.png",
		MimeType:  "image/png",
		SizeBytes: 9,
	}
	mockMedia.On("Open", mock.Anything, "abc123.png").
		Return(media, io.NopCloser(strings.NewReader("png bytes")), nil)

	req := httptest.NewRequest(http.MethodGet, "/media/abc123.png", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "png bytes", rec.Body.String())
}

func TestMediaHandler_Serve_NotFound(t *testing.T) {
	mockMedia, _, app, _ := setupMediaTest(t)

	mockMedia.On("Open", mock.Anything, "missing.png").
		Return(nil, nil, io.ErrUnexpectedEOF)

	req := httptest.NewRequest(http.MethodGet, "/media/missing.png", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}
