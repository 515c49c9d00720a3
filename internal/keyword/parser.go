package keyword

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ParsedKeywordQuery is the criteria extracted from one landing-page slug.
// Empty strings mean the component was not present.
type ParsedKeywordQuery struct {
	Category string `json:"category,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	HasLimit bool   `json:"hasLimit"`

	// Invalid is set when the slug still holds unrecognized words after
	// every known term was removed. An invalid query never matches.
	Invalid bool `json:"invalid"`
}

// Location returns the parsed value for kind.
func (q ParsedKeywordQuery) Location(kind LocationKind) string {
	switch kind {
	case KindCity:
		return q.City
	case KindState:
		return q.State
	case KindCountry:
		return q.Country
	}
	return ""
}

func (q *ParsedKeywordQuery) setLocation(kind LocationKind, value string) {
	switch kind {
	case KindCity:
		q.City = value
	case KindState:
		q.State = value
	case KindCountry:
		q.Country = value
	}
}

var fillerWord = regexp.MustCompile(`\bin\b`)

// Parse converts a hyphenated slug into a ParsedKeywordQuery using the
// supplied category names and location terms. It never fails: unknown
// words surface as Invalid, missing components stay empty.
func Parse(slug string, categories []string, locations []LocationTerm) ParsedKeywordQuery {
	var q ParsedKeywordQuery

	working := stripIntentAndLimit(strings.ReplaceAll(strings.ToLower(slug), "-", " "), &q)

	if name, components, ok := matchCategory(working, categories); ok {
		q.Category = name
		for _, c := range components {
			working = removeFirst(working, componentPattern(c))
		}
	}

	working = extractLocations(working, locations, &q)

	working = fillerWord.ReplaceAllString(working, " ")
	if Normalize(working) != "" {
		q.Invalid = true
	}

	return q
}

// stripIntentAndLimit drops top/best and bare numbers. The first positive
// number directly following top/best becomes the result limit.
func stripIntentAndLimit(s string, q *ParsedKeywordQuery) string {
	kept := make([]string, 0, 8)
	afterIntent := false

	for _, tok := range strings.Fields(s) {
		if isIntentToken(tok) {
			afterIntent = true
			continue
		}
		if isNumber(tok) {
			if afterIntent && !q.HasLimit {
				if n, err := strconv.Atoi(tok); err == nil && n > 0 {
					q.Limit = n
					q.HasLimit = true
				}
			}
			afterIntent = false
			continue
		}
		afterIntent = false
		kept = append(kept, tok)
	}

	return strings.Join(kept, " ")
}

func isNumber(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// matchCategory picks the longest category slug whose components all occur
// in working. Equal lengths keep the earlier category.
func matchCategory(working string, categories []string) (string, []string, bool) {
	var bestName, bestSlug string

	for _, name := range categories {
		slug := SlugifyTerm(name)
		if slug == "" || len(slug) <= len(bestSlug) {
			continue
		}
		if containsComponents(working, strings.Split(slug, "-")) {
			bestName, bestSlug = name, slug
		}
	}

	if bestSlug == "" {
		return "", nil, false
	}
	return bestName, strings.Split(bestSlug, "-"), true
}

func containsComponents(working string, components []string) bool {
	for _, c := range components {
		if strings.Contains(working, c) {
			continue
		}
		// "university" must also accept "universities"
		if strings.HasSuffix(c, "y") && strings.Contains(working, strings.TrimSuffix(c, "y")+"ies") {
			continue
		}
		return false
	}
	return true
}

// componentPattern matches one category component as a whole word,
// including its plural form.
func componentPattern(c string) *regexp.Regexp {
	if strings.HasSuffix(c, "y") && len(c) > 1 {
		return regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.TrimSuffix(c, "y")) + `(?:y|ies)\b`)
	}
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(c) + `(?:es|s)?\b`)
}

// removeFirst blanks the leftmost match only, so a later location such as
// "College Station" keeps its words.
func removeFirst(s string, re *regexp.Regexp) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + " " + s[loc[1]:]
}

// extractLocations consumes location terms longest first so that
// "New Delhi" wins over "Delhi". Each kind is recorded at most once.
func extractLocations(working string, locations []LocationTerm, q *ParsedKeywordQuery) string {
	type candidate struct {
		term    LocationTerm
		pattern *regexp.Regexp
		length  int
	}

	candidates := make([]candidate, 0, len(locations))
	for _, term := range locations {
		if !term.Kind.valid() {
			continue
		}
		words := tokens(term.Value)
		if len(words) == 0 {
			continue
		}
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		candidates = append(candidates, candidate{
			term:    term,
			pattern: regexp.MustCompile(`\b` + strings.Join(quoted, `\s+`) + `\b`),
			length:  len(Normalize(term.Value)),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].length > candidates[j].length
	})

	for _, c := range candidates {
		if q.Location(c.term.Kind) != "" {
			continue
		}
		loc := c.pattern.FindStringIndex(working)
		if loc == nil {
			continue
		}
		q.setLocation(c.term.Kind, c.term.Value)
		working = working[:loc[0]] + " " + working[loc[1]:]
	}

	return working
}
