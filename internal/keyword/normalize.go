// Package keyword resolves programmatic landing-page slugs such as
// "top-10-yoga-colleges-in-new-delhi" into category/location criteria,
// filters listings against them and paginates the result.
//
// Everything in this package is pure: callers load the category and
// listing collections first and pass them in explicitly.
package keyword

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases s and strips every non-alphanumeric character.
// Parser and filter both compare through this function.
func Normalize(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}

// SlugifyTerm lowercases s and joins its alphanumeric runs with hyphens,
// e.g. "B.Ed College" -> "b-ed-college".
func SlugifyTerm(s string) string {
	return strings.Trim(nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// HasIntentToken reports whether slug carries the "top" or "best" token
// required by keyword landing routes.
func HasIntentToken(slug string) bool {
	for _, tok := range tokens(slug) {
		if isIntentToken(tok) {
			return true
		}
	}
	return false
}

func isIntentToken(tok string) bool {
	return tok == "top" || tok == "best"
}

func tokens(s string) []string {
	return strings.Fields(nonAlphanumeric.ReplaceAllString(strings.ToLower(s), " "))
}
