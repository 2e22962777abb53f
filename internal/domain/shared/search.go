package shared

import "strings"

// NormalizeQuery trims and lower-cases a free-text search query
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// ContainsAny reports whether any field contains the normalized query.
// An empty query matches everything.
func ContainsAny(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
