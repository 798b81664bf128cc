package contactmsg

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huynhland/cms/internal/app/system/auth"
	"go.uber.org/zap"
)

// Routes returns a router with the contact message endpoints.
//
// When mounted at /api/contact-message:
//   - POST /api/contact-message - Public contact form intake
//   - GET  /api/contact-message - Inbox, newest first (admin)
//
// The log is append-only: there are no update or delete routes.
func Routes(h *Handler, adminKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(auth.APIKeyAuth(adminKey, logger))
		gr.Get("/", h.ListHandler)
	})

	return r
}
