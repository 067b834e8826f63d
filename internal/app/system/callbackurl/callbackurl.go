// Package callbackurl derives absolute OAuth callback URLs from the
// incoming request's Host header.
//
// Resolution never fails. A request without a Host header produces a URL
// with an empty host, which the OAuth provider will reject.
package callbackurl

import (
	"net/http"
	"strings"
)

const (
	// LocalDevURL replaces hosts bound to 0.0.0.0 outside production.
	LocalDevURL = "http://localhost:3000"

	// DefaultCallbackPath is appended to the base URL by CallbackURL.
	DefaultCallbackPath = "/auth/google/callback"
)

// ResolveBaseURL returns the scheme and host the browser should come back to.
//
//   - production: canonicalURL if set, else https://<host>
//   - development with a 0.0.0.0 host: LocalDevURL
//   - development otherwise: http://<host>
func ResolveBaseURL(headers http.Header, isProduction bool, canonicalURL string) string {
	host := headers.Get("Host")

	if isProduction {
		if canonicalURL != "" {
			return canonicalURL
		}
		return "https://" + host
	}

	if strings.Contains(host, "0.0.0.0") {
		return LocalDevURL
	}
	return "http://" + host
}

// ResolveCallbackURL appends path to the resolved base URL.
// An empty path means DefaultCallbackPath. A trailing slash on the base is
// dropped so the join never doubles it.
func ResolveCallbackURL(headers http.Header, isProduction bool, canonicalURL, path string) string {
	if path == "" {
		path = DefaultCallbackPath
	}
	return joinPath(ResolveBaseURL(headers, isProduction, canonicalURL), path)
}

// joinPath leaves a bare "scheme://" alone; that is the empty-host result.
func joinPath(base, path string) string {
	if strings.HasPrefix(path, "/") && strings.HasSuffix(base, "/") && !strings.HasSuffix(base, "://") {
		base = strings.TrimRight(base, "/")
		if strings.HasSuffix(base, ":") {
			base += "//"
		}
	}
	return base + path
}

// HeadersOf returns the request headers with Host filled in.
// net/http moves the Host header into Request.Host, so it is copied back.
func HeadersOf(r *http.Request) http.Header {
	h := r.Header.Clone()
	if h == nil {
		h = http.Header{}
	}
	if r.Host != "" {
		h.Set("Host", r.Host)
	}
	return h
}

// Resolver binds the environment-level settings.
type Resolver struct {
	Production   bool
	CanonicalURL string
	CallbackPath string
}

// BaseURL resolves the base URL for r.
func (rv Resolver) BaseURL(r *http.Request) string {
	return ResolveBaseURL(HeadersOf(r), rv.Production, rv.CanonicalURL)
}

// CallbackURL resolves the full callback URL for r.
func (rv Resolver) CallbackURL(r *http.Request) string {
	return ResolveCallbackURL(HeadersOf(r), rv.Production, rv.CanonicalURL, rv.CallbackPath)
}
