package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrSlugTaken = errors.New("slug is already in use")

const projectColumns = `id, title, slug, summary, body, cover_image_id, tags,
	live_url, repo_url, display_order, published, created_at, updated_at`

type ProjectService struct {
	db *database.DB
}

func NewProjectService(db *database.DB) *ProjectService {
	return &ProjectService{db: db}
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Body, &p.CoverImageID,
		&p.Tags, &p.LiveURL, &p.RepoURL, &p.DisplayOrder, &p.Published,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProjects(rows pgx.Rows) ([]models.Project, error) {
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Body, &p.CoverImageID,
			&p.Tags, &p.LiveURL, &p.RepoURL, &p.DisplayOrder, &p.Published,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListPublished returns the public-facing project list.
func (s *ProjectService) ListPublished(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE published = TRUE
		ORDER BY display_order, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

// ListAll returns every project for the admin screens.
func (s *ProjectService) ListAll(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+projectColumns+` FROM projects
		ORDER BY display_order, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return scanProject(s.db.Pool.QueryRow(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE id = $1
	`, id))
}

func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return scanProject(s.db.Pool.QueryRow(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE slug = $1 AND published = TRUE
	`, slug))
}

type ProjectParams struct {
	Title        string
	Slug         string
	Summary      string
	Body         string
	CoverImageID *uuid.UUID
	Tags         []string
	LiveURL      *string
	RepoURL      *string
	DisplayOrder int
	Published    bool
}

func (s *ProjectService) Create(ctx context.Context, params ProjectParams) (*models.Project, error) {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	p, err := scanProject(s.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (title, slug, summary, body, cover_image_id, tags, live_url, repo_url, display_order, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+projectColumns+`
	`, params.Title, params.Slug, params.Summary, params.Body, params.CoverImageID,
		tags, params.LiveURL, params.RepoURL, params.DisplayOrder, params.Published))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, params ProjectParams) (*models.Project, error) {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	p, err := scanProject(s.db.Pool.QueryRow(ctx, `
		UPDATE projects SET
			title = $1, slug = $2, summary = $3, body = $4, cover_image_id = $5,
			tags = $6, live_url = $7, repo_url = $8, display_order = $9,
			published = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING `+projectColumns+`
	`, params.Title, params.Slug, params.Summary, params.Body, params.CoverImageID,
		tags, params.LiveURL, params.RepoURL, params.DisplayOrder, params.Published, id))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Reorder assigns display_order from the given id sequence in one
// transaction.
func (s *ProjectService) Reorder(ctx context.Context, ids []uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, id := range ids {
		if _, err := tx.Exec(ctx, `
			UPDATE projects SET display_order = $1, updated_at = NOW() WHERE id = $2
		`, i, id); err != nil {
			return fmt.Errorf("failed to reorder project %s: %w", id, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *ProjectService) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	return count, err
}
