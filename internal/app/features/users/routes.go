package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huynhland/cms/internal/app/system/auth"
	"go.uber.org/zap"
)

// Routes returns a router with the user management endpoints, all behind
// the admin API key.
//
// When mounted at /api/users:
//   - GET    /api/users       - List accounts
//   - GET    /api/users/{id}  - Account detail
//   - POST   /api/users       - Create account
//   - PUT    /api/users/{id}  - Update account
//   - DELETE /api/users/{id}  - Delete account
func Routes(h *Handler, adminKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.APIKeyAuth(adminKey, logger))

	r.Get("/", h.ListHandler)
	r.Get("/{id}", h.GetHandler)
	r.Post("/", h.CreateHandler)
	r.Put("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)

	return r
}
