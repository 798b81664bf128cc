// Package htmlsanitize cleans rich-text content before it is stored.
//
// News articles and the history/mission/vision/infor pages are edited with a
// rich-text editor on the admin panel and arrive as HTML. bluemonday strips
// anything dangerous while keeping the formatting the editor produces.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		// UGC policy as the base: formatting, lists, links, images.
		policy = bluemonday.UGCPolicy()

		// The editor emits tables for property comparison blocks.
		policy.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
		policy.AllowAttrs("colspan", "rowspan").OnElements("th", "td")

		// Common inline formatting beyond the UGC default
		policy.AllowElements("u", "s", "sub", "sup", "mark")
	})
	return policy
}

// Sanitize cleans HTML input, removing dangerous elements and attributes
// while preserving safe formatting. Plain text passes through unchanged
// apart from entity escaping.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// IsPlainText reports whether content appears to contain no HTML tags,
// which is how legacy records written before the rich-text editor look.
func IsPlainText(content string) bool {
	return !strings.ContainsAny(content, "<>")
}
