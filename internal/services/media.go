package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

var allowedMimeTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
}

type MediaService struct {
	db       *database.DB
	store    storage.Store
	maxBytes int64
	logger   *zap.Logger
}

func NewMediaService(db *database.DB, store storage.Store, maxBytes int64, logger *zap.Logger) *MediaService {
	return &MediaService{db: db, store: store, maxBytes: maxBytes, logger: logger}
}

// Upload stores the blob then the row; a failed insert rolls back the
// blob so the store never accumulates orphans.
func (s *MediaService) Upload(ctx context.Context, originalName, mimeType string, size int64, r io.Reader, uploadedBy uuid.UUID) (*models.MediaFile, error) {
	if size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	ext, ok := allowedMimeTypes[strings.ToLower(mimeType)]
	if !ok {
		return nil, ErrUnsupportedType
	}

	fileName := uuid.New().String() + ext

	// LimitReader guards against a client lying in Content-Length.
	written, err := s.store.Save(fileName, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	if written > s.maxBytes {
		_ = s.store.Remove(fileName)
		return nil, ErrFileTooLarge
	}

	var media models.MediaFile
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO media_files (file_name, original_name, mime_type, size_bytes, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, file_name, original_name, mime_type, size_bytes, uploaded_by, created_at
	`, fileName, originalName, mimeType, written, uploadedBy).Scan(
		&media.ID, &media.FileName, &media.OriginalName, &media.MimeType,
		&media.SizeBytes, &media.UploadedBy, &media.CreatedAt,
	)
	if err != nil {
		if rmErr := s.store.Remove(fileName); rmErr != nil {
			s.logger.Warn("failed to remove orphaned blob",
				zap.String("file", fileName), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("failed to record media file: %w", err)
	}

	return &media, nil
}

func (s *MediaService) List(ctx context.Context) ([]models.MediaFile, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, file_name, original_name, mime_type, size_bytes, uploaded_by, created_at
		FROM media_files
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.MediaFile
	for rows.Next() {
		var media models.MediaFile
		if err := rows.Scan(
			&media.ID, &media.FileName, &media.OriginalName, &media.MimeType,
			&media.SizeBytes, &media.UploadedBy, &media.CreatedAt,
		); err != nil {
			return nil, err
		}
		files = append(files, media)
	}
	return files, rows.Err()
}

func (s *MediaService) GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error) {
	var media models.MediaFile
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, file_name, original_name, mime_type, size_bytes, uploaded_by, created_at
		FROM media_files WHERE id = $1
	`, id).Scan(
		&media.ID, &media.FileName, &media.OriginalName, &media.MimeType,
		&media.SizeBytes, &media.UploadedBy, &media.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (s *MediaService) GetByFileName(ctx context.Context, fileName string) (*models.MediaFile, error) {
	var media models.MediaFile
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, file_name, original_name, mime_type, size_bytes, uploaded_by, created_at
		FROM media_files WHERE file_name = $1
	`, fileName).Scan(
		&media.ID, &media.FileName, &media.OriginalName, &media.MimeType,
		&media.SizeBytes, &media.UploadedBy, &media.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// Open returns the blob reader plus its metadata for serving.
func (s *MediaService) Open(ctx context.Context, fileName string) (*models.MediaFile, io.ReadCloser, error) {
	media, err := s.GetByFileName(ctx, fileName)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(media.FileName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return media, rc, nil
}

// Delete removes the row first, then the blob. A dangling blob after a
// failed remove is logged, not fatal.
func (s *MediaService) Delete(ctx context.Context, id uuid.UUID) error {
	var fileName string
	err := s.db.Pool.QueryRow(ctx, `
		DELETE FROM media_files WHERE id = $1 RETURNING file_name
	`, id).Scan(&fileName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}
		return err
	}

	if err := s.store.Remove(fileName); err != nil {
		s.logger.Warn("failed to remove blob after delete",
			zap.String("file", fileName), zap.Error(err))
	}
	return nil
}

func (s *MediaService) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM media_files`).Scan(&count)
	return count, err
}

// PublicURL builds the serving URL for a stored file.
func PublicURL(baseURL, fileName string) string {
	return strings.TrimRight(baseURL, "/") + "/media/" + fileName
}

// ExtensionForMime returns the storage extension for an allowed mime
// type.
func ExtensionForMime(mimeType string) (string, bool) {
	ext, ok := allowedMimeTypes[strings.ToLower(mimeType)]
	return ext, ok
}
