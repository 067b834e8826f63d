package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/dalemusser/stratadesk/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadesk/internal/app/system/network"
	"go.uber.org/zap"
)

// APIKeyAuth returns middleware that requires "Authorization: Bearer <key>".
//
// An empty validKey rejects every request; routes.go only mounts this
// middleware when an api_key is configured.
func APIKeyAuth(validKey string, logger *zap.Logger) func(http.Handler) http.Handler {
	if validKey == "" {
		logger.Warn("API key not configured - all API requests will be rejected")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validKey == "" {
				jsonutil.Unauthorized(w, "API authentication not configured")
				return
			}

			scheme, key, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || key == "" {
				logger.Debug("API request rejected: missing or malformed Authorization header",
					zap.String("path", r.URL.Path))
				jsonutil.Unauthorized(w, "expected Authorization: Bearer <api-key>")
				return
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(validKey)) != 1 {
				logger.Warn("API request rejected: invalid API key",
					zap.String("path", r.URL.Path),
					zap.String("client_ip", network.ClientIP(r)))
				jsonutil.Unauthorized(w, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
