package services

import (
	"context"
	"fmt"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MessageService struct {
	db     *database.DB
	email  *EmailService
	logger *zap.Logger
}

func NewMessageService(db *database.DB, email *EmailService, logger *zap.Logger) *MessageService {
	return &MessageService{db: db, email: email, logger: logger}
}

// Create stores a contact form submission and fires a best-effort
// email notification.
func (s *MessageService) Create(ctx context.Context, name, email, subject, body string) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO contact_messages (name, email, subject, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, subject, body, read, created_at
	`, name, email, subject, body).Scan(
		&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Body, &msg.Read, &msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if s.email != nil && s.email.IsConfigured() {
		if err := s.email.NotifyContactMessage(name, email, subject, body); err != nil {
			s.logger.Warn("failed to send contact notification", zap.Error(err))
		}
	}

	return &msg, nil
}

func (s *MessageService) List(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, email, subject, body, read, created_at
		FROM contact_messages
		WHERE ($1 = FALSE OR read = FALSE)
		ORDER BY created_at DESC
	`, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ContactMessage
	for rows.Next() {
		var msg models.ContactMessage
		if err := rows.Scan(
			&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Body, &msg.Read, &msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (s *MessageService) MarkRead(ctx context.Context, id uuid.UUID, read bool) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE contact_messages SET read = $1 WHERE id = $2
		RETURNING id, name, email, subject, body, read, created_at
	`, read, id).Scan(
		&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Body, &msg.Read, &msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *MessageService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *MessageService) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages WHERE read = FALSE`).Scan(&count)
	return count, err
}
