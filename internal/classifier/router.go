package classifier

import "strings"

// Router picks the scorer category for a message by keyword membership
type Router struct {
	keywords []string
}

// NewRouter creates a router over the support keywords of tables.
// A nil tables value uses the built-in tables.
func NewRouter(tables *Tables) *Router {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Router{keywords: tables.SupportKeywords}
}

// Route returns CategoryCustomerSupport when any support keyword occurs in
// the lowercased text, and CategoryBusinessEmail otherwise.
func (r *Router) Route(text string) Category {
	if containsAny(strings.ToLower(text), r.keywords) {
		return CategoryCustomerSupport
	}
	return CategoryBusinessEmail
}
