// internal/app/features/platforms/platforms.go
package platforms

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/stratadesk/internal/app/features/errors"
	"github.com/dalemusser/stratadesk/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadesk/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Lister is the store operation this feature needs.
type Lister interface {
	List(ctx context.Context) ([]models.Platform, error)
}

// Handler serves the platform list.
type Handler struct {
	store  Lister
	errLog *errorsfeature.ErrorLogger
}

// NewHandler creates a platforms Handler.
func NewHandler(store Lister, errLog *errorsfeature.ErrorLogger) *Handler {
	return &Handler{store: store, errLog: errLog}
}

// Routes returns a chi.Router with the platform routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// List handles GET /api/platforms. Store failures are returned as 500.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.errLog.Log(r, "failed to load platforms", err)
		jsonutil.InternalError(w, "failed to load platforms")
		return
	}
	jsonutil.List(w, items)
}
