package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	AuditLoginSuccess   = "login_success"
	AuditLoginFailed    = "login_failed"
	AuditLoginLocked    = "login_locked"
	AuditSignup         = "signup"
	AuditUserCreated    = "user_created"
	AuditUserUpdated    = "user_updated"
	AuditUserDeleted    = "user_deleted"
	AuditContentUpdated = "content_updated"
	AuditMediaUploaded  = "media_uploaded"
	AuditMediaDeleted   = "media_deleted"
	AuditSettingChanged = "setting_changed"
)

type AuditLog struct {
	ID           uuid.UUID       `json:"id"`
	ActorID      *uuid.UUID      `json:"actor_id,omitempty"`
	Action       string          `json:"action"`
	ResourceType string          `json:"resource_type"`
	ResourceID   *uuid.UUID      `json:"resource_id,omitempty"`
	Details      json.RawMessage `json:"details"`
	IPAddress    string          `json:"ip_address"`
	UserAgent    string          `json:"user_agent"`
	CreatedAt    time.Time       `json:"created_at"`
}
