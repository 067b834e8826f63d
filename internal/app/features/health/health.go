// internal/app/features/health/health.go
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/stratadesk/internal/app/system/jsonutil"
	"github.com/dalemusser/stratadesk/internal/app/system/mongoconn"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// Handler provides health check endpoints.
type Handler struct {
	provider mongoconn.Provider
	logger   *zap.Logger
}

// NewHandler creates a new health check Handler.
func NewHandler(provider mongoconn.Provider, logger *zap.Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger,
	}
}

// Response represents the health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns a chi.Router with /, /ready and /live mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds the Kubernetes probe paths /ready, /readyz and
// /livez on the root router.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// ping acquires the shared handle and pings the primary.
func (h *Handler) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	db, err := h.provider.Acquire(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, readpref.Primary())
}

// Check reports database reachability.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:   "ok",
		Services: map[string]string{"mongodb": "ok"},
	}

	status := http.StatusOK
	if err := h.ping(r.Context()); err != nil {
		h.logger.Warn("health check: mongodb ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Services["mongodb"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	jsonutil.JSON(w, status, resp)
}

// Ready is the readiness probe.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		jsonutil.JSON(w, http.StatusServiceUnavailable, Response{Status: "not ready"})
		return
	}
	jsonutil.OK(w, Response{Status: "ready"})
}

// Live is the liveness probe. It never touches the database.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, Response{Status: "alive"})
}
