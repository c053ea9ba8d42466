package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
)

// UserInfo is the normalized identity a provider hands back after code
// exchange. It carries just enough to provision or match a profile.
type UserInfo struct {
	Email     string
	Name      string
	AvatarURL string
	ID        string
	Provider  string
}

// Provider is a single OAuth identity source. Google is the only
// implementation today; the interface keeps the auth handler agnostic.
type Provider interface {
	GetConsentURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*UserInfo, error)
	Name() string
}

// GenerateState mints the CSRF state parameter for a consent redirect.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
