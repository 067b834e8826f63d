// internal/app/features/dealers/dealers.go
package dealers

import (
	"context"
	"net/http"

	"github.com/dalemusser/stratadesk/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadesk/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Lister is the store operation this feature needs.
type Lister interface {
	List(ctx context.Context) ([]models.Dealer, error)
}

// Handler serves the dealer list.
type Handler struct {
	store  Lister
	logger *zap.Logger
}

// NewHandler creates a dealers Handler.
func NewHandler(store Lister, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Routes returns a chi.Router with the dealer routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// List handles GET /api/dealers. Always 200; see clients.Handler.List.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Warn("dealer list returned an error", zap.Error(err))
		items = nil
	}
	jsonutil.List(w, items)
}
