package resource

import (
	"regexp"
	"strings"
)

var multiSlash = regexp.MustCompile("//+")

// normalize readies a path pattern for registration: non-empty patterns
// get a leading slash (prefix concatenation upstream can lose it) and
// every run of slashes collapses into one.
func normalize(pattern string) string {
	if pattern != "" && !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}

	return multiSlash.ReplaceAllString(pattern, "/")
}

// toggleSlash flips the trailing slash on a normalized pattern,
// producing the twin pattern a Resource registers alongside it.
// Toggling twice round-trips.
//
// The root pattern "/" toggles to the empty string; registrars treat
// an empty pattern as the root.
func toggleSlash(pattern string) string {
	if strings.HasSuffix(pattern, "/") {
		return strings.TrimSuffix(pattern, "/")
	}

	return pattern + "/"
}
