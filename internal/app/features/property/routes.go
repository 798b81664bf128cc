package property

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huynhland/cms/internal/app/system/auth"
	"go.uber.org/zap"
)

// Routes returns a router with the property endpoints.
//
// When mounted at /api/property:
//   - GET    /api/property             - Search/list properties
//   - GET    /api/property/{id}        - Property detail
//   - POST   /api/property             - Create (admin)
//   - PUT    /api/property/{id}        - Partial update (admin)
//   - PUT    /api/property/{id}/status - Toggle active/hidden (admin)
//   - DELETE /api/property/{id}        - Delete (admin)
//
// Reads are public; mutations sit behind the optional admin API key.
func Routes(h *Handler, adminKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListHandler)
	r.Get("/{id}", h.GetHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(auth.APIKeyAuth(adminKey, logger))
		gr.Post("/", h.CreateHandler)
		gr.Put("/{id}", h.UpdateHandler)
		gr.Put("/{id}/status", h.StatusHandler)
		gr.Delete("/{id}", h.DeleteHandler)
	})

	return r
}
