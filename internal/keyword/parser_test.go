package keyword

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func testCategories() []string {
	return []string{"College", "Yoga College", "University", "Music College", "Dance College"}
}

func testLocations() []LocationTerm {
	return []LocationTerm{
		{Value: "New Delhi", Kind: KindCity},
		{Value: "Delhi", Kind: KindCity},
		{Value: "Pune", Kind: KindCity},
		{Value: "Maharashtra", Kind: KindState},
		{Value: "Delhi", Kind: KindState},
		{Value: "India", Kind: KindCountry},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestParse_LongerLocationWins(t *testing.T) {
	q := Parse("top-10-yoga-colleges-in-new-delhi",
		[]string{"Yoga College"},
		[]LocationTerm{
			{Value: "Delhi", Kind: KindCity},
			{Value: "New Delhi", Kind: KindCity},
		})

	assert.Equal(t, ParsedKeywordQuery{
		Category: "Yoga College",
		City:     "New Delhi",
		Limit:    10,
		HasLimit: true,
	}, q)
}

func TestParse_UnknownLocationIsInvalid(t *testing.T) {
	q := Parse("best-yoga-colleges-in-atlantis", testCategories(), testLocations())

	assert.True(t, q.Invalid)
	assert.Equal(t, "Yoga College", q.Category)
	assert.Empty(t, Filter(q, testListings()))
}

func TestParse_Idempotent(t *testing.T) {
	slugs := []string{
		"top-10-yoga-colleges-in-new-delhi",
		"best-universities-in-india",
		"top-colleges-in-atlantis",
		"top-5",
	}

	for _, slug := range slugs {
		t.Run(slug, func(t *testing.T) {
			first := Parse(slug, testCategories(), testLocations())
			second := Parse(slug, testCategories(), testLocations())
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("Parse not idempotent (-first +second):\n%s", diff)
			}
		})
	}
}

func TestParse_Cases(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		expected ParsedKeywordQuery
	}{
		{
			name:     "category only",
			slug:     "best-yoga-colleges",
			expected: ParsedKeywordQuery{Category: "Yoga College"},
		},
		{
			name: "plural ies form and country",
			slug: "top-5-universities-in-india",
			expected: ParsedKeywordQuery{
				Category: "University",
				Country:  "India",
				Limit:    5,
				HasLimit: true,
			},
		},
		{
			name: "city and state together",
			slug: "top-colleges-in-pune-maharashtra",
			expected: ParsedKeywordQuery{
				Category: "College",
				City:     "Pune",
				State:    "Maharashtra",
			},
		},
		{
			name: "city and country",
			slug: "top-10-yoga-colleges-in-new-delhi-india",
			expected: ParsedKeywordQuery{
				Category: "Yoga College",
				City:     "New Delhi",
				Country:  "India",
				Limit:    10,
				HasLimit: true,
			},
		},
		{
			name:     "location without category",
			slug:     "top-10-in-delhi",
			expected: ParsedKeywordQuery{City: "Delhi", Limit: 10, HasLimit: true},
		},
		{
			name:     "number not after intent is dropped",
			slug:     "top-yoga-colleges-2024",
			expected: ParsedKeywordQuery{Category: "Yoga College"},
		},
		{
			name:     "zero is not a limit",
			slug:     "top-0-yoga-colleges",
			expected: ParsedKeywordQuery{Category: "Yoga College"},
		},
		{
			name:     "mixed case slug",
			slug:     "Top-3-Yoga-Colleges-In-Pune",
			expected: ParsedKeywordQuery{Category: "Yoga College", City: "Pune", Limit: 3, HasLimit: true},
		},
		{
			name: "equal length categories keep source order",
			slug: "top-music-dance-colleges",
			expected: ParsedKeywordQuery{
				Category: "Music College",
				Invalid:  true,
			},
		},
		{
			name:     "unknown words only",
			slug:     "top-cooking-schools",
			expected: ParsedKeywordQuery{Invalid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Parse(tt.slug, testCategories(), testLocations())
			assert.Equal(t, tt.expected, q)
		})
	}
}

// ==========================
// Edge Cases
// ==========================

func TestParse_CategorySubstringWithoutWholeWordIsInvalid(t *testing.T) {
	q := Parse("top-martial-arts", []string{"Art"}, nil)

	assert.Equal(t, "Art", q.Category)
	assert.True(t, q.Invalid)
}

func TestParse_CategoryWordInsideLocation(t *testing.T) {
	locations := []LocationTerm{{Value: "College Station", Kind: KindCity}}

	q := Parse("top-colleges-in-college-station", []string{"College"}, locations)

	assert.Equal(t, ParsedKeywordQuery{Category: "College", City: "College Station"}, q)
}

func TestParse_EachKindMatchesOnce(t *testing.T) {
	locations := []LocationTerm{
		{Value: "Pune", Kind: KindCity},
		{Value: "Mumbai", Kind: KindCity},
	}

	q := Parse("top-colleges-in-mumbai-pune", []string{"College"}, locations)

	assert.Equal(t, "Mumbai", q.City)
	assert.True(t, q.Invalid)
}

func TestParse_EmptyInputs(t *testing.T) {
	q := Parse("top-10", nil, nil)

	assert.Equal(t, ParsedKeywordQuery{Limit: 10, HasLimit: true}, q)
	assert.Empty(t, Filter(q, testListings()))
}

func TestParse_IgnoresUnknownLocationKinds(t *testing.T) {
	locations := []LocationTerm{{Value: "Pune", Kind: LocationKind("district")}}

	q := Parse("top-colleges-in-pune", []string{"College"}, locations)

	assert.Empty(t, q.City)
	assert.True(t, q.Invalid)
}

func TestParsedKeywordQuery_Location(t *testing.T) {
	q := ParsedKeywordQuery{City: "Pune", State: "Maharashtra", Country: "India"}

	assert.Equal(t, "Pune", q.Location(KindCity))
	assert.Equal(t, "Maharashtra", q.Location(KindState))
	assert.Equal(t, "India", q.Location(KindCountry))
	assert.Empty(t, q.Location(LocationKind("district")))
}
