package uploads

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huynhland/cms/internal/app/system/auth"
	"go.uber.org/zap"
)

// Routes returns a router with the upload endpoint.
//
// When mounted at /api/uploads:
//   - POST /api/uploads - Upload one file, respond {"url": ...} (admin)
func Routes(h *Handler, adminKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.APIKeyAuth(adminKey, logger))
	r.Post("/", h.UploadHandler)

	return r
}
