package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// Slugify turns a title into a URL-safe slug: lowercase, hyphens for spaces,
// everything outside [a-z0-9-] dropped, runs of hyphens collapsed.
func Slugify(input string) string {
	s := strings.ToLower(input)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
