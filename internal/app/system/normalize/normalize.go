// internal/app/system/normalize/normalize.go

// Package normalize provides canonical forms for user-entered identifiers
// so that lookups and uniqueness checks behave predictably.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are compared and
// stored in this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a free-text query parameter.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
