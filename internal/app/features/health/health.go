// Package health exposes the liveness and readiness probes. The CMS has a
// single hard dependency, MongoDB; file storage is checked lazily on use
// and deliberately kept out of readiness so a storage outage does not take
// the read API down with it.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/huynhland/cms/internal/app/system/jsonutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// Handler provides the health check endpoints.
type Handler struct {
	mongoClient *mongo.Client
	logger      *zap.Logger
}

// NewHandler creates a new health check Handler.
func NewHandler(mongoClient *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{mongoClient: mongoClient, logger: logger}
}

// Mount adds the probe endpoints directly on the root router, following the
// Kubernetes conventions:
//   - /health - full check with per-service detail
//   - /ready, /readyz - readiness probe (Mongo must answer)
//   - /livez - liveness probe (process is up)
func Mount(r chi.Router, h *Handler) {
	r.Get("/health", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// Check performs a full health check including database connectivity.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	status := "ok"
	services := map[string]string{"mongodb": "ok"}
	code := http.StatusOK

	if err := h.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		h.logger.Warn("health check: mongodb ping failed", zap.Error(err))
		status = "degraded"
		services["mongodb"] = "unavailable"
		code = http.StatusServiceUnavailable
	}

	jsonutil.JSON(w, code, map[string]any{
		"status":   status,
		"services": services,
	})
}

// Ready reports whether the service can answer requests.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		jsonutil.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	jsonutil.OK(w, map[string]string{"status": "ready"})
}

// Live reports that the process is up.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, map[string]string{"status": "alive"})
}
