package errors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNotFound_Returns404(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	rec := httptest.NewRecorder()

	h.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "/nowhere") {
		t.Errorf("body = %s, want path in message", rec.Body.String())
	}
}

func TestMethodNotAllowed_Returns405(t *testing.T) {
	h := NewHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/clients", nil)
	rec := httptest.NewRecorder()

	h.MethodNotAllowed(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestErrorLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	errLog := NewErrorLogger(zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/api/platforms", nil)
	errLog.LogWithFields(req, "failed to list platforms", errors.New("boom"), zap.String("collection", "platforms"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/api/platforms" {
		t.Errorf("path = %v", fields["path"])
	}
	if fields["collection"] != "platforms" {
		t.Errorf("collection = %v", fields["collection"])
	}
}

func TestErrorLogger_Nil(t *testing.T) {
	var errLog *ErrorLogger
	// must not panic
	errLog.Log(httptest.NewRequest(http.MethodGet, "/", nil), "msg", errors.New("x"))
}
