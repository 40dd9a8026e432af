// Package naming provides the name normalization used for generated method and field names.
package naming

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)
	camelBoundaryRegex   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	acronymBoundaryRegex = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)
)

// ToSnakeCase converts arbitrary text to a lowercase underscore-separated form.
// The three passes are order sensitive and part of the observable contract for
// generated names: non-alphanumerics become separators, then a separator is
// inserted at each lower-to-upper boundary, then at each acronym boundary
// (e.g. "HTTPResponse" becomes "http_response").
func ToSnakeCase(text string) string {
	s := nonAlphanumericRegex.ReplaceAllString(text, "_")
	s = camelBoundaryRegex.ReplaceAllString(s, "${1}_${2}")
	s = acronymBoundaryRegex.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
