// Package apicors provides permissive CORS middleware for the JSON API.
//
// The admin panel and the public website are separate frontends served from
// other origins, and nothing on this API authenticates with cookies, so the
// API can allow any origin without credential concerns. Requests that do
// carry the optional admin API key send it as a Bearer token, which is not
// CSRF-vulnerable.
package apicors

import (
	"net/http"
)

// Middleware returns CORS middleware for the /api routes.
//
// It allows any origin, the verbs the resource routers use, and the headers
// JSON clients send, and it short-circuits preflight OPTIONS requests.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept")
			w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
