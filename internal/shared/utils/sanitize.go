package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips all HTML. Free-text fields are stored as plain text;
// rendering concerns stay on the client.
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips HTML markup from user-supplied free text and trims
// surrounding whitespace.
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
