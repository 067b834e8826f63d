// internal/app/features/authgoogle/authgoogle.go
package authgoogle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	errorsfeature "github.com/dalemusser/stratadesk/internal/app/features/errors"
	"github.com/dalemusser/stratadesk/internal/app/system/auth"
	"github.com/dalemusser/stratadesk/internal/app/system/callbackurl"
	"github.com/dalemusser/stratadesk/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleUserInfoURL is Google's OAuth2 profile endpoint.
const GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Config holds the OAuth client settings.
type Config struct {
	ClientID     string
	ClientSecret string
	Resolver     callbackurl.Resolver

	// Endpoint and UserInfoURL default to Google's.
	Endpoint    oauth2.Endpoint
	UserInfoURL string
}

// Handler provides Google OAuth handlers.
type Handler struct {
	sessionMgr  *auth.SessionManager
	resolver    callbackurl.Resolver
	oauthConfig oauth2.Config // RedirectURL is filled in per request
	userInfoURL string
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new Google OAuth Handler.
func NewHandler(cfg Config, sessionMgr *auth.SessionManager, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = google.Endpoint
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = GoogleUserInfoURL
	}

	return &Handler{
		sessionMgr: sessionMgr,
		resolver:   cfg.Resolver,
		oauthConfig: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
		errLog:      errLog,
		logger:      logger,
	}
}

// Routes returns a chi.Router with the sign-in routes mounted.
//
// When mounted at /auth:
//   - GET  /auth/google           - start the OAuth flow
//   - GET  /auth/google/callback  - OAuth redirect target
//   - GET  /auth/me               - current profile as JSON
//   - POST /auth/logout           - clear the session
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/google", h.startAuth)
	r.Get("/google/callback", h.handleCallback)
	r.Get("/me", h.me)
	r.Post("/logout", h.logout)
	return r
}

// configFor returns the OAuth config with the redirect URL resolved from r.
// Google requires the same redirect URL on the auth and exchange legs.
func (h *Handler) configFor(r *http.Request) *oauth2.Config {
	cfg := h.oauthConfig
	cfg.RedirectURL = h.resolver.CallbackURL(r)
	return &cfg
}

// startAuth initiates the Google OAuth flow.
func (h *Handler) startAuth(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	if err := h.sessionMgr.PutState(w, r, state); err != nil {
		h.errLog.Log(r, "failed to store oauth state", err)
		http.Redirect(w, r, "/?error=oauth_error", http.StatusSeeOther)
		return
	}

	cfg := h.configFor(r)
	h.logger.Debug("starting google sign-in", zap.String("redirect_url", cfg.RedirectURL))
	http.Redirect(w, r, cfg.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// handleCallback processes the Google OAuth callback.
func (h *Handler) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	want, err := h.sessionMgr.TakeState(w, r)
	if err != nil || want != q.Get("state") {
		h.logger.Warn("invalid oauth state", zap.Error(err))
		http.Redirect(w, r, "/?error=invalid_state", http.StatusSeeOther)
		return
	}

	if errMsg := q.Get("error"); errMsg != "" {
		h.logger.Warn("oauth error from google", zap.String("error", errMsg))
		http.Redirect(w, r, "/?error="+url.QueryEscape(errMsg), http.StatusSeeOther)
		return
	}

	cfg := h.configFor(r)
	token, err := cfg.Exchange(r.Context(), q.Get("code"))
	if err != nil {
		h.errLog.Log(r, "failed to exchange code", err)
		http.Redirect(w, r, "/?error=token_exchange_failed", http.StatusSeeOther)
		return
	}

	info, err := h.getUserInfo(r.Context(), cfg, token)
	if err != nil {
		h.errLog.Log(r, "failed to get user info", err)
		http.Redirect(w, r, "/?error=userinfo_failed", http.StatusSeeOther)
		return
	}
	if info.Email == "" {
		h.logger.Warn("google profile has no email")
		http.Redirect(w, r, "/?error=userinfo_failed", http.StatusSeeOther)
		return
	}

	if err := h.sessionMgr.SignIn(w, r, auth.SessionUser{
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}); err != nil {
		h.errLog.Log(r, "failed to create session", err)
		http.Redirect(w, r, "/?error=session_error", http.StatusSeeOther)
		return
	}

	h.logger.Info("google sign-in", zap.String("email", info.Email))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// me returns the signed-in profile.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		jsonutil.Unauthorized(w, "not signed in")
		return
	}
	jsonutil.OK(w, u)
}

// logout clears the session.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessionMgr.SignOut(w, r)
	jsonutil.OK(w, map[string]string{"status": "signed out"})
}

// GoogleUserInfo represents user info from Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// getUserInfo fetches the profile for token.
func (h *Handler) getUserInfo(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (*GoogleUserInfo, error) {
	client := cfg.Client(ctx, token)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.userInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo: unexpected status %d", resp.StatusCode)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
