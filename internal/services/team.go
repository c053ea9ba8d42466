package services

import (
	"context"
	"fmt"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const teamColumns = `id, name, title, bio, photo_id, display_order, visible, created_at, updated_at`

type TeamService struct {
	db *database.DB
}

func NewTeamService(db *database.DB) *TeamService {
	return &TeamService{db: db}
}

func scanTeamMember(row pgx.Row) (*models.TeamMember, error) {
	var m models.TeamMember
	err := row.Scan(
		&m.ID, &m.Name, &m.Title, &m.Bio, &m.PhotoID,
		&m.DisplayOrder, &m.Visible, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *TeamService) List(ctx context.Context, visibleOnly bool) ([]models.TeamMember, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+teamColumns+` FROM team_members
		WHERE ($1 = FALSE OR visible = TRUE)
		ORDER BY display_order, created_at
	`, visibleOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Title, &m.Bio, &m.PhotoID,
			&m.DisplayOrder, &m.Visible, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *TeamService) GetByID(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	return scanTeamMember(s.db.Pool.QueryRow(ctx, `
		SELECT `+teamColumns+` FROM team_members WHERE id = $1
	`, id))
}

type TeamMemberParams struct {
	Name         string
	Title        string
	Bio          string
	PhotoID      *uuid.UUID
	DisplayOrder int
	Visible      bool
}

func (s *TeamService) Create(ctx context.Context, params TeamMemberParams) (*models.TeamMember, error) {
	m, err := scanTeamMember(s.db.Pool.QueryRow(ctx, `
		INSERT INTO team_members (name, title, bio, photo_id, display_order, visible)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+teamColumns+`
	`, params.Name, params.Title, params.Bio, params.PhotoID, params.DisplayOrder, params.Visible))
	if err != nil {
		return nil, fmt.Errorf("failed to create team member: %w", err)
	}
	return m, nil
}

func (s *TeamService) Update(ctx context.Context, id uuid.UUID, params TeamMemberParams) (*models.TeamMember, error) {
	return scanTeamMember(s.db.Pool.QueryRow(ctx, `
		UPDATE team_members SET
			name = $1, title = $2, bio = $3, photo_id = $4,
			display_order = $5, visible = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+teamColumns+`
	`, params.Name, params.Title, params.Bio, params.PhotoID,
		params.DisplayOrder, params.Visible, id))
}

func (s *TeamService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
