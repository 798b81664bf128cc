package propertytype

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huynhland/cms/internal/app/system/auth"
	"go.uber.org/zap"
)

// Routes returns a router with the property type endpoints.
//
// When mounted at /api/property-type:
//   - GET    /api/property-type       - List all types
//   - GET    /api/property-type/{id}  - Single-locale projection (?lang=)
//   - POST   /api/property-type       - Create (admin)
//   - PUT    /api/property-type/{id}  - Update (admin)
//   - DELETE /api/property-type/{id}  - Delete (admin)
func Routes(h *Handler, adminKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListHandler)
	r.Get("/{id}", h.GetHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(auth.APIKeyAuth(adminKey, logger))
		gr.Post("/", h.CreateHandler)
		gr.Put("/{id}", h.UpdateHandler)
		gr.Delete("/{id}", h.DeleteHandler)
	})

	return r
}
