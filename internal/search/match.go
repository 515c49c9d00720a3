package search

import (
	"sort"
	"strings"

	"institute-discovery/internal/keyword"
)

// MatchDocuments returns the documents of the given types that contain
// every query token in at least one field, most title hits first. Ties
// keep input order. An empty types slice admits every type.
func MatchDocuments(query string, docs []Document, types []ContentType) []Document {
	queryTokens := queryTokens(query)
	if len(queryTokens) == 0 {
		return []Document{}
	}

	type scored struct {
		doc       Document
		titleHits int
	}

	var matched []scored
	for _, d := range docs {
		if !typeAllowed(d.Type, types) {
			continue
		}
		fields := documentFields(d)
		if !containsAll(fields, queryTokens) {
			continue
		}
		matched = append(matched, scored{doc: d, titleHits: countIn(fields[0], queryTokens)})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].titleHits > matched[j].titleHits
	})

	out := make([]Document, 0, len(matched))
	for _, m := range matched {
		out = append(out, m.doc)
	}
	return out
}

func queryTokens(query string) []string {
	var out []string
	for _, tok := range strings.Split(keyword.SlugifyTerm(query), "-") {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// documentFields returns the normalized searchable fields, title first.
func documentFields(d Document) []string {
	fields := []string{
		keyword.Normalize(d.Title),
		keyword.Normalize(d.Body),
		keyword.Normalize(d.Category),
		keyword.Normalize(d.City),
	}
	for _, tag := range d.Tags {
		fields = append(fields, keyword.Normalize(tag))
	}
	return fields
}

func containsAll(fields, tokens []string) bool {
	for _, tok := range tokens {
		found := false
		for _, f := range fields {
			if strings.Contains(f, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func countIn(field string, tokens []string) int {
	n := 0
	for _, tok := range tokens {
		if strings.Contains(field, tok) {
			n++
		}
	}
	return n
}

func typeAllowed(t ContentType, types []ContentType) bool {
	if len(types) == 0 {
		return true
	}
	for _, allowed := range types {
		if t == allowed {
			return true
		}
	}
	return false
}
