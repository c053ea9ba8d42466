package handlers

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/dstanic/folio-api/internal/middleware"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/m1z23r/drift/pkg/drift"
)

type MediaHandler struct {
	mediaService MediaServiceInterface
	auditService AuditServiceInterface
	baseURL      string
	maxBytes     int64
}

func NewMediaHandler(mediaService MediaServiceInterface, auditService AuditServiceInterface, baseURL string, maxBytes int64) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		auditService: auditService,
		baseURL:      baseURL,
		maxBytes:     maxBytes,
	}
}

func (h *MediaHandler) fileResponse(m *models.MediaFile) dto.MediaFileResponse {
	return dto.MediaFileResponse{
		ID:           m.ID,
		FileName:     m.FileName,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		SizeBytes:    m.SizeBytes,
		URL:          services.PublicURL(h.baseURL, m.FileName),
		CreatedAt:    m.CreatedAt,
	}
}

// Upload accepts a multipart form with a single "file" part.
func (h *MediaHandler) Upload(c *drift.Context) {
	userID := middleware.GetUserID(c)

	if err := c.Request.ParseMultipartForm(h.maxBytes); err != nil {
		c.BadRequest("invalid multipart form")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.BadRequest("file part is required")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")

	media, err := h.mediaService.Upload(context.Background(),
		header.Filename, mimeType, header.Size, file, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileTooLarge):
			c.JSON(413, map[string]string{"error": "file exceeds the upload size limit"})
		case errors.Is(err, services.ErrUnsupportedType):
			c.JSON(415, map[string]string{"error": "unsupported file type"})
		default:
			c.InternalServerError("failed to store file")
		}
		return
	}

	h.auditService.Record(context.Background(), services.AuditEntry{
		ActorID:      &userID,
		Action:       models.AuditMediaUploaded,
		ResourceType: "media_file",
		ResourceID:   &media.ID,
		Details:      map[string]string{"file_name": media.FileName, "original_name": media.OriginalName},
		IPAddress:    clientMeta(c).IPAddress,
		UserAgent:    clientMeta(c).UserAgent,
	})

	_ = c.JSON(201, h.fileResponse(media))
}

func (h *MediaHandler) List(c *drift.Context) {
	files, err := h.mediaService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to list media")
		return
	}

	resp := make([]dto.MediaFileResponse, 0, len(files))
	for i := range files {
		resp = append(resp, h.fileResponse(&files[i]))
	}
	_ = c.JSON(200, resp)
}

// Serve streams a stored blob on the public media path.
func (h *MediaHandler) Serve(c *drift.Context) {
	media, rc, err := h.mediaService.Open(context.Background(), c.Param("fileName"))
	if err != nil {
		c.NotFound("file not found")
		return
	}
	defer rc.Close()

	c.Response.Header().Set("Content-Type", media.MimeType)
	c.Response.Header().Set("Content-Length", strconv.FormatInt(media.SizeBytes, 10))
	c.Response.Header().Set("Cache-Control", "public, max-age=86400")
	c.Response.WriteHeader(200)
	_, _ = io.Copy(c.Response, rc)
}

func (h *MediaHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid media ID")
		return
	}

	if err := h.mediaService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.NotFound("file not found")
			return
		}
		c.InternalServerError("failed to delete file")
		return
	}

	h.auditService.Record(context.Background(), services.AuditEntry{
		ActorID:      &userID,
		Action:       models.AuditMediaDeleted,
		ResourceType: "media_file",
		ResourceID:   &id,
		IPAddress:    clientMeta(c).IPAddress,
		UserAgent:    clientMeta(c).UserAgent,
	})

	_ = c.JSON(200, map[string]string{"message": "file deleted"})
}
