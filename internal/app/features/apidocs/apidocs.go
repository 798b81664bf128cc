// Package apidocs serves the committed OpenAPI contract at /api-docs.
// The document is embedded at build time; it is the reviewed source of
// truth for the API rather than something reflected from code.
package apidocs

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var openapiYAML []byte

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>Huynh Land CMS API</title></head>
<body>
<h1>Huynh Land CMS API</h1>
<p>The OpenAPI 3 contract is available at <a href="/api-docs/openapi.yaml">openapi.yaml</a>.</p>
</body>
</html>
`

// Routes returns a router serving the documentation.
//
// When mounted at /api-docs:
//   - GET /api-docs              - Minimal index page
//   - GET /api-docs/openapi.yaml - The OpenAPI 3 document
func Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexHTML))
	})
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(openapiYAML)
	})

	return r
}
