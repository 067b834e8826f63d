package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/stratadesk/internal/app/system/network"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session error classification for logging.
type sessionErrorType int

const (
	sessionErrUnknown   sessionErrorType = iota
	sessionErrExpired                    // timestamp expired - normal
	sessionErrTampered                   // MAC invalid - potential attack
	sessionErrCorrupted                  // decode/decrypt failed - corruption or key rotation
	sessionErrBackend                    // store/backend failure
)

const (
	isAuthKey     = "is_authenticated"
	emailKey      = "email"
	nameKey       = "name"
	pictureKey    = "picture"
	oauthStateKey = "oauth_state"
)

// ErrNoState is returned by TakeState when the session carries no OAuth state.
var ErrNoState = errors.New("no oauth state in session")

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager wraps the cookie store that carries the signed-in Google
// profile and the in-flight OAuth state.
type SessionManager struct {
	store  *sessions.CookieStore
	logger *zap.Logger
	name   string
}

// NewSessionManager creates a SessionManager.
//
// A weak or placeholder sessionKey is rejected when secure is true and only
// warned about otherwise.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, &SessionConfigError{Message: "session key is empty; provide ≥32 random chars"}
	}

	isWeak := len(sessionKey) < 32 || isDefaultKey(sessionKey)
	if secure && isWeak {
		return nil, &SessionConfigError{
			Message: "session key is too weak for production; provide ≥32 random chars (not the default dev key)",
		}
	}
	if isWeak {
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(sessionKey)),
			zap.Bool("is_default", isDefaultKey(sessionKey)))
	}

	if name == "" {
		name = "stratadesk-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		// Lax keeps the cookie on the top-level redirect back from Google.
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session manager initialized",
		zap.Bool("secure", secure),
		zap.String("name", name),
		zap.String("domain", domain))

	return &SessionManager{
		store:  store,
		logger: logger,
		name:   name,
	}, nil
}

// SessionConfigError is returned when session configuration is invalid.
type SessionConfigError struct {
	Message string
}

func (e *SessionConfigError) Error() string {
	return e.Message
}

// SessionName returns the configured session cookie name.
func (sm *SessionManager) SessionName() string {
	return sm.name
}

// session loads the session, falling back to a fresh one when the cookie
// cannot be decoded.
func (sm *SessionManager) session(r *http.Request) *sessions.Session {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		sm.logSessionError(r, err)
		sess, _ = sm.store.New(r, sm.name)
	}
	return sess
}

func (sm *SessionManager) logSessionError(r *http.Request, err error) {
	errType, category := classifySessionError(err)
	switch errType {
	case sessionErrExpired:
		sm.logger.Debug("session expired, starting fresh session",
			zap.String("category", category),
			zap.String("path", r.URL.Path))
	case sessionErrTampered:
		sm.logger.Warn("session MAC validation failed (possible tampering)",
			zap.String("category", category),
			zap.String("path", r.URL.Path),
			zap.String("client_ip", network.ClientIP(r)))
	case sessionErrCorrupted:
		sm.logger.Info("session decode failed, starting fresh session",
			zap.String("category", category),
			zap.String("path", r.URL.Path))
	default:
		sm.logger.Error("session store error, starting fresh session",
			zap.Error(err),
			zap.String("category", category),
			zap.String("path", r.URL.Path))
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| OAuth state                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// PutState records the OAuth state value for the upcoming callback.
func (sm *SessionManager) PutState(w http.ResponseWriter, r *http.Request, state string) error {
	sess := sm.session(r)
	sess.Values[oauthStateKey] = state
	return sess.Save(r, w)
}

// TakeState returns and clears the recorded OAuth state. Each state can be
// taken once.
func (sm *SessionManager) TakeState(w http.ResponseWriter, r *http.Request) (string, error) {
	sess := sm.session(r)
	state := getString(sess, oauthStateKey)
	if state == "" {
		return "", ErrNoState
	}
	delete(sess.Values, oauthStateKey)
	if err := sess.Save(r, w); err != nil {
		return "", err
	}
	return state, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Signed-in profile                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is the signed-in Google profile.
type SessionUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// SignIn stores u in the session.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess := sm.session(r)
	sess.Values[isAuthKey] = true
	sess.Values[emailKey] = u.Email
	sess.Values[nameKey] = u.Name
	sess.Values[pictureKey] = u.Picture
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) {
	sess := sm.session(r)
	sess.Values[isAuthKey] = false
	delete(sess.Values, emailKey)
	delete(sess.Values, nameKey)
	delete(sess.Values, pictureKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		sm.logger.Warn("failed to clear session", zap.Error(err))
	}
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the signed-in user placed in the context by LoadSessionUser.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// LoadSessionUser is middleware that puts the signed-in user, if any, into
// the request context.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sm.session(r)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			if email := getString(sess, emailKey); email != "" {
				r = withUser(r, &SessionUser{
					Email:   email,
					Name:    getString(sess, nameKey),
					Picture: getString(sess, pictureKey),
				})
			}
		}
		next.ServeHTTP(w, r)
	})
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a SessionUser into the request context for testing.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

// isDefaultKey checks if the session key looks like a placeholder.
func isDefaultKey(key string) bool {
	lower := strings.ToLower(key)
	for _, p := range []string{"dev-only", "change-me", "placeholder", "default", "example", "insecure", "test-key", "secret123", "password"} {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// classifySessionError categorizes a session/cookie error for logging.
func classifySessionError(err error) (sessionErrorType, string) {
	if err == nil {
		return sessionErrUnknown, "none"
	}

	var scErr securecookie.Error
	if !errors.As(err, &scErr) {
		return sessionErrBackend, "unknown"
	}
	if !scErr.IsDecode() {
		return sessionErrBackend, "backend"
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "expired timestamp"):
		return sessionErrExpired, "expired"
	case strings.Contains(errStr, "mac") || strings.Contains(errStr, "hash"):
		return sessionErrTampered, "mac_invalid"
	case strings.Contains(errStr, "decrypt"):
		return sessionErrCorrupted, "decrypt_failed"
	default:
		return sessionErrCorrupted, "decode_failed"
	}
}
