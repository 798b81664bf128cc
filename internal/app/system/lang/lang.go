// Package lang validates the language codes the CMS serves content in.
//
// Every localized resource (property locale blocks, per-language singleton
// documents) is keyed by one of three locale codes: vi, en, ko. Handlers read
// the requested code from the "lang" query parameter and must reject anything
// else with a 400 before touching the store.
package lang

import (
	"net/http"
	"strings"
)

// Default is the locale assumed when a request does not name one.
const Default = "vi"

// Supported lists the locale codes in the order responses present them.
var Supported = []string{"vi", "en", "ko"}

// IsSupported reports whether code is one of the supported locales.
// The check is exact; callers normalize case first (see FromRequest).
func IsSupported(code string) bool {
	for _, l := range Supported {
		if code == l {
			return true
		}
	}
	return false
}

// FromRequest returns the lowercased locale code from the "lang" query
// parameter, defaulting to "vi" when absent. ok is false when the parameter
// names an unsupported locale; callers answer 400 "Invalid language." in
// that case.
func FromRequest(r *http.Request) (code string, ok bool) {
	code = strings.ToLower(strings.TrimSpace(r.URL.Query().Get("lang")))
	if code == "" {
		code = Default
	}
	if !IsSupported(code) {
		return code, false
	}
	return code, true
}
