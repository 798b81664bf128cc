package news

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huynhland/cms/internal/app/system/auth"
	"go.uber.org/zap"
)

// Routes returns a router with the news endpoints.
//
// When mounted at /api/news:
//   - GET    /api/news         - List, optional ?title= prefix search
//   - GET    /api/news/latest  - Most recent article by date
//   - GET    /api/news/{id}    - Article detail
//   - POST   /api/news         - Create (admin)
//   - PUT    /api/news/{id}    - Update (admin)
//   - DELETE /api/news/{id}    - Delete (admin)
func Routes(h *Handler, adminKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListHandler)
	r.Get("/latest", h.LatestHandler)
	r.Get("/{id}", h.GetHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(auth.APIKeyAuth(adminKey, logger))
		gr.Post("/", h.CreateHandler)
		gr.Put("/{id}", h.UpdateHandler)
		gr.Delete("/{id}", h.DeleteHandler)
	})

	return r
}
