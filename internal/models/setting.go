package models

import (
	"time"

	"github.com/google/uuid"
)

// Feature flag and presentation keys stored in site_settings.
const (
	SettingSignupEnabled       = "global_signup_enabled"
	SettingEmailVerification   = "email_verification_required"
	SettingPasswordMinLength   = "password_min_length"
	SettingMaxLoginAttempts    = "max_login_attempts"
	SettingSessionTimeoutHours = "session_timeout_hours"
	SettingSiteTitle           = "site_title"
	SettingContactEmail        = "contact_email"
)

// SystemSettingKeys are the flags only a super admin may change.
var SystemSettingKeys = map[string]bool{
	SettingSignupEnabled:       true,
	SettingEmailVerification:   true,
	SettingPasswordMinLength:   true,
	SettingMaxLoginAttempts:    true,
	SettingSessionTimeoutHours: true,
}

type Setting struct {
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}
