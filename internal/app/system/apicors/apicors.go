// Package apicors provides CORS middleware for the read-only list API.
//
// The API authenticates with a Bearer key, not cookies, so credentials are
// never allowed and any origin may be admitted.
package apicors

import (
	"net/http"
)

const (
	allowMethods = "GET, OPTIONS"
	allowHeaders = "Authorization, Content-Type, Accept"
	maxAge       = "86400" // 24 hours
)

// Middleware returns CORS middleware for the /api routes.
//
// With no origins every origin is allowed ("*"). Otherwise only the listed
// origins are echoed back, and other origins get no CORS headers so the
// browser blocks them. Preflight OPTIONS requests are answered with 204.
//
// Usage in routes.go:
//
//	r.Route("/api", func(api chi.Router) {
//	    api.Use(apicors.Middleware(appCfg.APIAllowedOrigins...))
//	    api.Use(auth.APIKeyAuth(appCfg.APIKey, logger))
//	})
func Middleware(origins ...string) func(http.Handler) http.Handler {
	var allowed map[string]struct{}
	if len(origins) > 0 {
		allowed = make(map[string]struct{}, len(origins))
		for _, o := range origins {
			allowed[o] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if allowed == nil {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Add("Vary", "Origin")
				if origin := r.Header.Get("Origin"); origin != "" {
					if _, ok := allowed[origin]; ok {
						h.Set("Access-Control-Allow-Origin", origin)
					}
				}
			}
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Max-Age", maxAge)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
