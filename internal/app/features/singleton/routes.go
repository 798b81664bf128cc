package singleton

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huynhland/cms/internal/app/system/auth"
	"go.uber.org/zap"
)

// Routes returns a router for one singleton resource.
//
// When mounted at /api/<resource>:
//   - GET    /api/<resource> - Read the document
//   - POST   /api/<resource> - Create (admin)
//   - PUT    /api/<resource> - Update (admin)
//   - DELETE /api/<resource> - Delete (admin)
func Routes(h *Handler, adminKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(auth.APIKeyAuth(adminKey, logger))
		gr.Post("/", h.CreateHandler)
		gr.Put("/", h.UpdateHandler)
		gr.Delete("/", h.DeleteHandler)
	})

	return r
}

// The four singletons the admin panel manages.
var (
	Settings = Resource{
		Noun: "Settings", JSONKey: "settings", Collection: "settings",
		Fields: []string{"color", "companyName", "slogan", "hashtag"},
	}
	Social = Resource{
		Noun: "Social links", JSONKey: "social", Collection: "social",
		Fields: []string{"facebook", "youtube"},
	}
	Contact = Resource{
		Noun: "Contact", JSONKey: "contact", Collection: "contact",
		Fields: []string{"hotline", "email", "workingHours"},
	}
	MainOfficeMap = Resource{
		Noun: "Main office map", JSONKey: "mainOfficeMap", Collection: "mainoffice_map",
		Fields: []string{"address", "iframe"},
	}
)
