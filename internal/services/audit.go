package services

import (
	"context"
	"encoding/json"

	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditService struct {
	db     *database.DB
	logger *zap.Logger
}

func NewAuditService(db *database.DB, logger *zap.Logger) *AuditService {
	return &AuditService{db: db, logger: logger}
}

type AuditEntry struct {
	ActorID      *uuid.UUID
	Action       string
	ResourceType string
	ResourceID   *uuid.UUID
	Details      any
	IPAddress    string
	UserAgent    string
}

// Record writes an audit row. Auditing is best-effort: failures are
// logged and swallowed so they never fail the request that triggered
// them.
func (s *AuditService) Record(ctx context.Context, entry AuditEntry) {
	details := json.RawMessage(`{}`)
	if entry.Details != nil {
		if data, err := json.Marshal(entry.Details); err == nil {
			details = data
		}
	}

	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO audit_logs (actor_id, action, resource_type, resource_id, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ActorID, entry.Action, entry.ResourceType, entry.ResourceID,
		details, entry.IPAddress, entry.UserAgent)
	if err != nil {
		s.logger.Error("failed to write audit log",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
	}
}

type AuditFilter struct {
	Action  string
	ActorID *uuid.UUID
	Limit   int
	Offset  int
}

func (s *AuditService) List(ctx context.Context, filter AuditFilter) ([]models.AuditLog, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, actor_id, action, resource_type, resource_id, details, ip_address, user_agent, created_at
		FROM audit_logs
		WHERE ($1 = '' OR action = $1)
		  AND ($2::uuid IS NULL OR actor_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, filter.Action, filter.ActorID, limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var entry models.AuditLog
		if err := rows.Scan(
			&entry.ID, &entry.ActorID, &entry.Action, &entry.ResourceType,
			&entry.ResourceID, &entry.Details, &entry.IPAddress, &entry.UserAgent,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	return s.List(ctx, AuditFilter{Limit: limit})
}
