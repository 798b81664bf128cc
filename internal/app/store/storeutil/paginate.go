// Package storeutil holds small helpers shared by the store packages.
package storeutil

// Page describes an optional limit/page window over a list query.
// Zero values mean "no pagination": the whole result set is returned.
type Page struct {
	Limit int
	Page  int
}

// Window converts the page into Mongo skip/limit values. Page numbers are
// 1-based; a non-positive page reads as the first page.
func (p Page) Window() (skip, limit int64) {
	if p.Limit <= 0 {
		return 0, 0
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	return int64(page-1) * int64(p.Limit), int64(p.Limit)
}

// Enabled reports whether the window limits the result set.
func (p Page) Enabled() bool {
	return p.Limit > 0
}
