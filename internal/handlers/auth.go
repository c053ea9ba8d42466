package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/dstanic/folio-api/internal/config"
	"github.com/dstanic/folio-api/internal/middleware"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/oauth"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type AuthHandler struct {
	cfg            *config.Config
	authService    AuthServiceInterface
	profileService ProfileServiceInterface
	tokenService   TokenServiceInterface
	jwtService     JWTServiceInterface
	provider       oauth.Provider
	states         sync.Map
	authCodes      sync.Map
}

type stateData struct {
	expiresAt time.Time
}

type authCodeData struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func NewAuthHandler(
	cfg *config.Config,
	authService AuthServiceInterface,
	profileService ProfileServiceInterface,
	tokenService TokenServiceInterface,
	jwtService JWTServiceInterface,
) *AuthHandler {
	h := &AuthHandler{
		cfg:            cfg,
		authService:    authService,
		profileService: profileService,
		tokenService:   tokenService,
		jwtService:     jwtService,
	}

	if cfg.Google.ClientID != "" {
		h.provider = oauth.NewGoogleProvider(cfg.Google)
	}

	go h.cleanupStates()

	return h
}

func (h *AuthHandler) HasOAuthProvider() bool {
	return h.provider != nil
}

func (h *AuthHandler) cleanupStates() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		now := time.Now()
		h.states.Range(func(key, value interface{}) bool {
			if sd, ok := value.(stateData); ok && now.After(sd.expiresAt) {
				h.states.Delete(key)
			}
			return true
		})
		h.authCodes.Range(func(key, value interface{}) bool {
			if acd, ok := value.(authCodeData); ok && now.After(acd.expiresAt) {
				h.authCodes.Delete(key)
			}
			return true
		})
	}
}

func (h *AuthHandler) SignUp(c *drift.Context) {
	var req dto.SignUpRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("invalid signup request: " + err.Error())
		return
	}

	profile, err := h.authService.SignUp(context.Background(), req.Email, req.Password, req.Name, clientMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSignupDisabled):
			c.Forbidden("signup is disabled")
		case errors.Is(err, services.ErrPasswordTooShort):
			c.BadRequest("password is too short")
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(409, map[string]string{"error": "email is already registered"})
		default:
			c.InternalServerError("failed to create account")
		}
		return
	}

	// Pending accounts get no session until verified.
	if profile.Status != models.StatusActive {
		_ = c.JSON(201, dto.NewProfileResponse(profile))
		return
	}

	pair, err := h.issueTokens(context.Background(), profile)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}
	_ = c.JSON(201, pair)
}

func (h *AuthHandler) SignIn(c *drift.Context) {
	var req dto.SignInRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		c.BadRequest("email and password are required")
		return
	}

	profile, err := h.authService.SignIn(context.Background(), req.Email, req.Password, clientMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.Unauthorized("invalid email or password")
		case errors.Is(err, services.ErrAccountLocked):
			c.Forbidden("too many failed attempts, try again later")
		case errors.Is(err, services.ErrAccountSuspended):
			c.Forbidden("account is suspended")
		case errors.Is(err, services.ErrAccountBanned):
			c.Forbidden("account is banned")
		case errors.Is(err, services.ErrAccountPending):
			c.Forbidden("account is pending verification")
		default:
			c.InternalServerError("sign in failed")
		}
		return
	}

	pair, err := h.issueTokens(context.Background(), profile)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}
	_ = c.JSON(200, pair)
}

func (h *AuthHandler) issueTokens(ctx context.Context, profile *models.Profile) (*dto.TokenResponse, error) {
	pair, err := h.jwtService.GenerateTokenPair(profile.ID, profile.Email, profile.Role)
	if err != nil {
		return nil, err
	}

	tokenHash := services.HashToken(pair.RefreshToken)
	if err := h.tokenService.StoreRefreshToken(ctx, profile.ID, tokenHash); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	tokenHash := services.HashToken(req.RefreshToken)
	ctx := context.Background()

	storedUserID, err := h.tokenService.ValidateRefreshToken(ctx, tokenHash)
	if err != nil || storedUserID != userID {
		c.Unauthorized("refresh token not found or expired")
		return
	}

	profile, err := h.profileService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("profile not found")
		return
	}

	// A suspension takes effect here, not at access token expiry.
	if profile.Status != models.StatusActive {
		_ = h.tokenService.RevokeAllUserTokens(ctx, userID)
		c.Forbidden("account is not active")
		return
	}

	if err := h.tokenService.RevokeRefreshToken(ctx, tokenHash); err != nil {
		c.InternalServerError("failed to rotate refresh token")
		return
	}

	pair, err := h.issueTokens(ctx, profile)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}
	_ = c.JSON(200, pair)
}

func (h *AuthHandler) Logout(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	tokenHash := services.HashToken(req.RefreshToken)
	if err := h.tokenService.RevokeRefreshToken(context.Background(), tokenHash); err != nil {
		c.InternalServerError("failed to revoke token")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) LogoutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(context.Background(), userID); err != nil {
		c.InternalServerError("failed to revoke tokens")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "all sessions logged out"})
}

func (h *AuthHandler) GetConsentURL(c *drift.Context) {
	if h.provider == nil {
		c.NotFound("oauth sign-in is not configured")
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		c.InternalServerError("failed to generate state")
		return
	}

	h.states.Store(state, stateData{expiresAt: time.Now().Add(10 * time.Minute)})

	_ = c.JSON(200, dto.ConsentURLResponse{
		URL: h.provider.GetConsentURL(state),
	})
}

func (h *AuthHandler) Callback(c *drift.Context) {
	if h.provider == nil {
		c.NotFound("oauth sign-in is not configured")
		return
	}

	state := c.QueryParam("state")
	if state == "" {
		h.redirectWithError(c, "missing state parameter")
		return
	}

	sd, ok := h.states.LoadAndDelete(state)
	if !ok {
		h.redirectWithError(c, "invalid or expired state")
		return
	}

	sdTyped, ok := sd.(stateData)
	if !ok || time.Now().After(sdTyped.expiresAt) {
		h.redirectWithError(c, "state expired")
		return
	}

	code := c.QueryParam("code")
	if code == "" {
		h.redirectWithError(c, "missing authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userInfo, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		h.redirectWithError(c, "failed to exchange code")
		return
	}

	profile, err := h.authService.FindOrCreateFromOAuth(ctx,
		userInfo.Email, userInfo.Name, userInfo.AvatarURL, userInfo.Provider, userInfo.ID)
	if err != nil {
		h.redirectWithError(c, "account is not available")
		return
	}

	authCode, err := oauth.GenerateState()
	if err != nil {
		h.redirectWithError(c, "failed to generate auth code")
		return
	}

	h.authCodes.Store(authCode, authCodeData{
		userID:    profile.ID,
		expiresAt: time.Now().Add(30 * time.Second),
	})

	redirectURL := fmt.Sprintf("%s?code=%s",
		h.cfg.FrontendCallbackURL,
		url.QueryEscape(authCode),
	)

	h.renderCallbackPage(c, redirectURL, "")
}

func (h *AuthHandler) ExchangeCode(c *drift.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Code == "" {
		c.BadRequest("code is required")
		return
	}

	acd, ok := h.authCodes.LoadAndDelete(req.Code)
	if !ok {
		c.Unauthorized("invalid or expired code")
		return
	}

	codeData, ok := acd.(authCodeData)
	if !ok || time.Now().After(codeData.expiresAt) {
		c.Unauthorized("code expired")
		return
	}

	ctx := context.Background()

	profile, err := h.profileService.GetByID(ctx, codeData.userID)
	if err != nil {
		c.Unauthorized("profile not found")
		return
	}

	pair, err := h.issueTokens(ctx, profile)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}
	_ = c.JSON(200, pair)
}

func (h *AuthHandler) redirectWithError(c *drift.Context, errMsg string) {
	redirectURL := fmt.Sprintf("%s?error=%s",
		h.cfg.FrontendCallbackURL,
		url.QueryEscape(errMsg),
	)
	h.renderCallbackPage(c, redirectURL, errMsg)
}

// renderCallbackPage serves a tiny page that forwards the browser to
// the frontend with either the one-time code or the error.
func (h *AuthHandler) renderCallbackPage(c *drift.Context, redirectURL, errMsg string) {
	status := 200
	heading := "Signed in"
	if errMsg != "" {
		status = 400
		heading = "Sign-in failed"
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>%s</title></head>
<body>
<p>%s. Redirecting...</p>
<script>window.location.href = %q;</script>
</body>
</html>`, heading, heading, redirectURL)

	_ = c.HTML(status, page)
}
