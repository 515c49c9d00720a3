package keyword

import (
	"strings"

	"institute-discovery/internal/models"
)

// LocationKind tags a LocationTerm.
type LocationKind string

const (
	KindCity    LocationKind = "city"
	KindState   LocationKind = "state"
	KindCountry LocationKind = "country"
)

func (k LocationKind) valid() bool {
	return k == KindCity || k == KindState || k == KindCountry
}

// LocationTerm is a city, state or country name known to the catalog.
type LocationTerm struct {
	Value string       `json:"value"`
	Kind  LocationKind `json:"kind"`
}

// Inputs bundles the collections a resolution runs against.
type Inputs struct {
	Categories []string         `json:"categories"`
	Locations  []LocationTerm   `json:"locations"`
	Listings   []models.Listing `json:"listings"`
}

// NewInputs projects category names and location terms out of the raw
// catalog collections.
func NewInputs(categories []models.Category, listings []models.Listing) Inputs {
	return Inputs{
		Categories: CategoryNames(categories),
		Locations:  DeriveLocationTerms(listings),
		Listings:   listings,
	}
}

// CategoryNames returns the non-blank category names in source order.
func CategoryNames(categories []models.Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if name := strings.TrimSpace(c.CategoryName); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// DeriveLocationTerms returns the distinct cities, then states, then
// countries found in listings, each in order of first appearance.
func DeriveLocationTerms(listings []models.Listing) []LocationTerm {
	type key struct {
		kind LocationKind
		norm string
	}
	seen := make(map[key]bool)
	terms := []LocationTerm{}

	collect := func(kind LocationKind, value func(models.Listing) string) {
		for _, l := range listings {
			v := strings.TrimSpace(value(l))
			k := key{kind: kind, norm: Normalize(v)}
			if k.norm == "" || seen[k] {
				continue
			}
			seen[k] = true
			terms = append(terms, LocationTerm{Value: v, Kind: kind})
		}
	}

	collect(KindCity, func(l models.Listing) string { return l.PropertyCity })
	collect(KindState, func(l models.Listing) string { return l.PropertyState })
	collect(KindCountry, func(l models.Listing) string { return l.PropertyCountry })

	return terms
}
