package keyword

import "institute-discovery/internal/models"

// Filter returns the listings satisfying q, in their existing order and
// truncated to q.Limit when one was parsed. An invalid or category-less
// query yields an empty slice.
func Filter(q ParsedKeywordQuery, listings []models.Listing) []models.Listing {
	out := []models.Listing{}
	if q.Invalid || q.Category == "" {
		return out
	}

	category := Normalize(q.Category)
	for _, l := range listings {
		if Normalize(l.Category) != category {
			continue
		}
		if !sameTerm(q.City, l.PropertyCity) ||
			!sameTerm(q.State, l.PropertyState) ||
			!sameTerm(q.Country, l.PropertyCountry) {
			continue
		}
		out = append(out, l)
		if q.HasLimit && len(out) >= q.Limit {
			break
		}
	}

	return out
}

// sameTerm treats an unset parsed value as "no constraint".
func sameTerm(parsed, actual string) bool {
	return parsed == "" || Normalize(parsed) == Normalize(actual)
}
