package services

import (
	"context"
	"testing"
	"time"

	"github.com/dstanic/folio-api/internal/config"
	"github.com/dstanic/folio-api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var messageCols = []string{"id", "name", "email", "subject", "body", "read", "created_at"}

func setupMessageService(t *testing.T) (*MessageService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	// SMTP is left unconfigured so Create never tries to send mail.
	email := NewEmailService(config.SMTPConfig{})
	return NewMessageService(db, email, zap.NewNop()), mock
}

func TestMessageService_Create(t *testing.T) {
	svc, mock := setupMessageService(t)
	id := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows(messageCols).
		AddRow(id, "Ana", "ana@example.com", "Hello", "I'd like a website.", false, now)
	mock.ExpectQuery(`INSERT INTO contact_messages`).
		WithArgs("Ana", "ana@example.com", "Hello", "I'd like a website.").
		WillReturnRows(rows)

	msg, err := svc.Create(context.Background(), "Ana", "ana@example.com", "Hello", "I'd like a website.")

	require.NoError(t, err)
	assert.Equal(t, id, msg.ID)
	assert.False(t, msg.Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageService_List_UnreadOnly(t *testing.T) {
	svc, mock := setupMessageService(t)
	now := time.Now()

	rows := pgxmock.NewRows(messageCols).
		AddRow(uuid.New(), "Ana", "ana@example.com", "Hello", "body", false, now)
	mock.ExpectQuery(`SELECT .+ FROM contact_messages`).
		WithArgs(true).
		WillReturnRows(rows)

	messages, err := svc.List(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.False(t, messages[0].Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageService_MarkRead(t *testing.T) {
	svc, mock := setupMessageService(t)
	id := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows(messageCols).
		AddRow(id, "Ana", "ana@example.com", "Hello", "body", true, now)
	mock.ExpectQuery(`UPDATE contact_messages SET read`).
		WithArgs(true, id).
		WillReturnRows(rows)

	msg, err := svc.MarkRead(context.Background(), id, true)

	require.NoError(t, err)
	assert.True(t, msg.Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageService_Delete_NotFound(t *testing.T) {
	svc, mock := setupMessageService(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM contact_messages WHERE id`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageService_CountUnread(t *testing.T) {
	svc, mock := setupMessageService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM contact_messages WHERE read = FALSE`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	count, err := svc.CountUnread(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
