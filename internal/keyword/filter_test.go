package keyword

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-discovery/internal/models"
)

func testListings() []models.Listing {
	categories := []string{"Yoga College", "College"}
	places := []struct{ city, state, country string }{
		{"New Delhi", "Delhi", "India"},
		{"Pune", "Maharashtra", "India"},
		{"Kathmandu", "Bagmati", "Nepal"},
	}

	listings := []models.Listing{}
	n := 0
	for _, category := range categories {
		for _, p := range places {
			for i := 0; i < 2; i++ {
				n++
				listings = append(listings, models.Listing{
					UniqueID:        fmt.Sprintf("prop-%02d", n),
					PropertyName:    fmt.Sprintf("%s %s %d", p.city, category, i),
					Category:        category,
					PropertyCity:    p.city,
					PropertyState:   p.state,
					PropertyCountry: p.country,
					Status:          models.ListingStatusActive,
					Rank:            n,
				})
			}
		}
	}
	return listings
}

// satisfies is the reference predicate for the filter contract.
func satisfies(q ParsedKeywordQuery, l models.Listing) bool {
	if Normalize(q.Category) != Normalize(l.Category) {
		return false
	}
	if q.City != "" && Normalize(q.City) != Normalize(l.PropertyCity) {
		return false
	}
	if q.State != "" && Normalize(q.State) != Normalize(l.PropertyState) {
		return false
	}
	if q.Country != "" && Normalize(q.Country) != Normalize(l.PropertyCountry) {
		return false
	}
	return true
}

func TestFilter_NoFalseNegativesOrPositives(t *testing.T) {
	queries := []ParsedKeywordQuery{
		{Category: "Yoga College"},
		{Category: "College", Country: "India"},
		{Category: "yoga-college", City: "new delhi"},
		{Category: "College", State: "Maharashtra", Country: "India"},
		{Category: "Yoga College", City: "Pune", Country: "Nepal"},
	}
	listings := testListings()

	for _, q := range queries {
		t.Run(fmt.Sprintf("%+v", q), func(t *testing.T) {
			got := Filter(q, listings)

			ids := map[string]bool{}
			for _, l := range got {
				assert.True(t, satisfies(q, l), "unexpected listing %s", l.UniqueID)
				ids[l.UniqueID] = true
			}
			for _, l := range listings {
				if satisfies(q, l) {
					assert.True(t, ids[l.UniqueID], "missing listing %s", l.UniqueID)
				}
			}
		})
	}
}

func TestFilter_LimitTruncatesInOrder(t *testing.T) {
	q := ParsedKeywordQuery{Category: "Yoga College", Limit: 3, HasLimit: true}

	got := Filter(q, testListings())

	require.Len(t, got, 3)
	assert.Equal(t, "prop-01", got[0].UniqueID)
	assert.Equal(t, "prop-02", got[1].UniqueID)
	assert.Equal(t, "prop-03", got[2].UniqueID)
}

func TestFilter_LimitLargerThanMatches(t *testing.T) {
	q := ParsedKeywordQuery{Category: "Yoga College", City: "Pune", Limit: 50, HasLimit: true}

	assert.Len(t, Filter(q, testListings()), 2)
}

func TestFilter_EmptyResults(t *testing.T) {
	tests := []struct {
		name string
		q    ParsedKeywordQuery
	}{
		{name: "invalid query", q: ParsedKeywordQuery{Category: "Yoga College", Invalid: true}},
		{name: "no category", q: ParsedKeywordQuery{City: "Pune"}},
		{name: "unknown category", q: ParsedKeywordQuery{Category: "Cooking School"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.q, testListings())
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestFilter_NilListings(t *testing.T) {
	got := Filter(ParsedKeywordQuery{Category: "College"}, nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
