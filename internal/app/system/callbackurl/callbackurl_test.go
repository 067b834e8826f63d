package callbackurl

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func hostHeader(host string) http.Header {
	h := http.Header{}
	if host != "" {
		h.Set("Host", host)
	}
	return h
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name      string
		host      string
		prod      bool
		canonical string
		want      string
	}{
		{name: "dev wildcard host", host: "0.0.0.0:8080", want: "http://localhost:3000"},
		{name: "dev named host", host: "myhost:3000", want: "http://myhost:3000"},
		{name: "dev ignores canonical", host: "myhost:3000", canonical: "https://desk.example.com", want: "http://myhost:3000"},
		{name: "prod without canonical", host: "example.com", prod: true, want: "https://example.com"},
		{name: "prod with canonical", host: "example.com", prod: true, canonical: "https://desk.example.com", want: "https://desk.example.com"},
		{name: "prod wildcard host stays https", host: "0.0.0.0:8080", prod: true, want: "https://0.0.0.0:8080"},
		{name: "dev missing host", want: "http://"},
		{name: "prod missing host", prod: true, want: "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveBaseURL(hostHeader(tt.host), tt.prod, tt.canonical)
			if got != tt.want {
				t.Errorf("ResolveBaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveCallbackURL(t *testing.T) {
	got := ResolveCallbackURL(hostHeader("myhost:3000"), false, "", "")
	if want := "http://myhost:3000/auth/google/callback"; got != want {
		t.Errorf("ResolveCallbackURL() = %q, want %q", got, want)
	}

	got = ResolveCallbackURL(hostHeader("example.com"), true, "https://desk.example.com", "/oauth/done")
	if want := "https://desk.example.com/oauth/done"; got != want {
		t.Errorf("ResolveCallbackURL() = %q, want %q", got, want)
	}
}

func TestResolveCallbackURL_TrailingSlash(t *testing.T) {
	tests := []struct {
		name      string
		host      string
		prod      bool
		canonical string
		path      string
		want      string
	}{
		{name: "canonical with slash", host: "example.com", prod: true, canonical: "https://desk.example.com/", want: "https://desk.example.com/auth/google/callback"},
		{name: "canonical with several slashes", host: "example.com", prod: true, canonical: "https://desk.example.com//", want: "https://desk.example.com/auth/google/callback"},
		{name: "canonical subpath with slash", host: "example.com", prod: true, canonical: "https://example.com/desk/", path: "/cb", want: "https://example.com/desk/cb"},
		{name: "prod missing host keeps scheme", prod: true, want: "https:///auth/google/callback"},
		{name: "dev missing host keeps scheme", want: "http:///auth/google/callback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCallbackURL(hostHeader(tt.host), tt.prod, tt.canonical, tt.path)
			if got != tt.want {
				t.Errorf("ResolveCallbackURL() = %q, want %q", got, tt.want)
			}
		})
	}

	// The base URL itself is still returned as configured.
	if got := ResolveBaseURL(hostHeader("example.com"), true, "https://desk.example.com/"); got != "https://desk.example.com/" {
		t.Errorf("ResolveBaseURL() = %q, want the canonical URL verbatim", got)
	}
}

func TestHeadersOf(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://myhost:3000/auth/google", nil)
	req.Header.Set("X-Test", "1")

	h := HeadersOf(req)
	if got := h.Get("Host"); got != "myhost:3000" {
		t.Errorf("Host = %q, want %q", got, "myhost:3000")
	}
	if h.Get("X-Test") != "1" {
		t.Error("other headers should be preserved")
	}
	if req.Header.Get("Host") != "" {
		t.Error("HeadersOf should not modify the request")
	}
}

func TestResolver(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	req.Host = "0.0.0.0:8080"

	dev := Resolver{}
	if got := dev.BaseURL(req); got != LocalDevURL {
		t.Errorf("BaseURL() = %q, want %q", got, LocalDevURL)
	}
	if got, want := dev.CallbackURL(req), LocalDevURL+DefaultCallbackPath; got != want {
		t.Errorf("CallbackURL() = %q, want %q", got, want)
	}

	prod := Resolver{Production: true, CallbackPath: "/cb"}
	req.Host = "desk.example.com"
	if got, want := prod.CallbackURL(req), "https://desk.example.com/cb"; got != want {
		t.Errorf("CallbackURL() = %q, want %q", got, want)
	}
}
