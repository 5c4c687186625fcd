package domain

import (
	"regexp"
	"strings"
)

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// Slugify derives the URL-safe lookup key for an event title.
// Examples: "React Conf 2026" -> "react-conf-2026", "  Go -- Meetup!! " -> "go-meetup"
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeSlug prepares a user-supplied slug for lookup.
func NormalizeSlug(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}
