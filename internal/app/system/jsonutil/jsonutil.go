// Package jsonutil writes JSON API responses with a consistent shape.
//
// Successful list responses use the envelope {"items": [...], "count": n};
// errors use {"error": message}.
package jsonutil

import (
	"encoding/json"
	"net/http"
)

// ListResponse is the envelope for list endpoints.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// JSON writes data with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// OK writes a 200 OK JSON response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// List writes a 200 OK list envelope. A nil slice is written as [].
func List[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	OK(w, ListResponse[T]{Items: items, Count: len(items)})
}

// Error writes {"error": message} with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Unauthorized writes a 401 Unauthorized error response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// InternalError writes a 500 response. Log the underlying error separately;
// message is shown to clients.
func InternalError(w http.ResponseWriter, message string) {
	Error(w, http.StatusInternalServerError, message)
}
