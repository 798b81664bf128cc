package localedoc

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huynhland/cms/internal/app/system/auth"
	"go.uber.org/zap"
)

// Routes returns a router for one per-language singleton resource.
//
// When mounted at /api/<resource>:
//   - GET    /api/<resource>?lang= - Read the language's document
//   - POST   /api/<resource>?lang= - Create (admin)
//   - PUT    /api/<resource>?lang= - Update (admin)
//   - DELETE /api/<resource>?lang= - Delete (admin)
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

// History, Mission, Vision and Infor carry rich-text content; Office keeps
// the branch contact card. These are the five resources the admin panel
// manages per language.
var (
	History = Resource{
		Noun: "History", JSONKey: "history", Collection: "histories",
		Fields:    []string{"title", "content"},
		Required:  []string{"title", "content"},
		Sanitized: []string{"content"},
	}
	Mission = Resource{
		Noun: "Mission", JSONKey: "mission", Collection: "missions",
		Fields:    []string{"title", "content"},
		Required:  []string{"title", "content"},
		Sanitized: []string{"content"},
	}
	Vision = Resource{
		Noun: "Vision", JSONKey: "vision", Collection: "visions",
		Fields:    []string{"title", "content"},
		Required:  []string{"title", "content"},
		Sanitized: []string{"content"},
	}
	Infor = Resource{
		Noun: "Infor", JSONKey: "infor", Collection: "infors",
		Fields:    []string{"title", "content"},
		Required:  []string{"title", "content"},
		Sanitized: []string{"content"},
	}
	Office = Resource{
		Noun: "Office", JSONKey: "office", Collection: "offices",
		Fields:   []string{"name", "address", "phone", "gmail"},
		Required: []string{"name", "address", "phone", "gmail"},
	}
)
