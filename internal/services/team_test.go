package services

import (
	"context"
	"testing"
	"time"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var teamCols = []string{
	"id", "name", "title", "bio", "photo_id", "display_order", "visible", "created_at", "updated_at",
}

func teamRow(id uuid.UUID, name string, visible bool) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(teamCols).AddRow(
		id, name, "Engineer", "", (*uuid.UUID)(nil), 0, visible, now, now,
	)
}

func setupTeamService(t *testing.T) (*TeamService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewTeamService(db), mock
}

func TestTeamService_List_VisibleOnly(t *testing.T) {
	svc, mock := setupTeamService(t)

	mock.ExpectQuery(`SELECT .+ FROM team_members`).
		WithArgs(true).
		WillReturnRows(teamRow(uuid.New(), "Dana", true))

	members, err := svc.List(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.True(t, members[0].Visible)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Create(t *testing.T) {
	svc, mock := setupTeamService(t)
	id := uuid.New()

	mock.ExpectQuery(`INSERT INTO team_members`).
		WithArgs("Dana", "Engineer", "", (*uuid.UUID)(nil), 0, true).
		WillReturnRows(teamRow(id, "Dana", true))

	member, err := svc.Create(context.Background(), TeamMemberParams{
		Name:    "Dana",
		Title:   "Engineer",
		Visible: true,
	})

	require.NoError(t, err)
	assert.Equal(t, id, member.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Update_NotFound(t *testing.T) {
	svc, mock := setupTeamService(t)
	id := uuid.New()

	mock.ExpectQuery(`UPDATE team_members SET`).
		WithArgs("Dana", "", "", (*uuid.UUID)(nil), 0, false, id).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Update(context.Background(), id, TeamMemberParams{Name: "Dana"})

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamService_Delete_NotFound(t *testing.T) {
	svc, mock := setupTeamService(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM team_members WHERE id`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
