package keyword

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-discovery/internal/models"
)

func testInputs() Inputs {
	return NewInputs([]models.Category{
		{UniqueID: "cat-1", CategoryName: "College"},
		{UniqueID: "cat-2", CategoryName: "Yoga College", ParentCategory: "College"},
	}, testListings())
}

func TestResolve_GuardRedirects(t *testing.T) {
	slugs := []string{
		"yoga-colleges-in-pune",
		"topology-colleges",
		"bestseller-yoga",
		"",
	}

	for _, slug := range slugs {
		t.Run(slug, func(t *testing.T) {
			res := Resolve(slug, 1, testInputs())

			assert.Equal(t, OutcomeRedirect, res.Outcome)
			assert.Empty(t, res.Message)
			assert.Equal(t, ParsedKeywordQuery{}, res.Query)
			assert.Empty(t, res.Page.Items)
			assert.Equal(t, 1, res.Page.Number)
		})
	}
}

func TestResolve_Outcomes(t *testing.T) {
	tests := []struct {
		name            string
		slug            string
		expectedOutcome Outcome
		expectedMessage string
		expectedItems   int
	}{
		{
			name:            "matching listings",
			slug:            "top-yoga-colleges-in-pune",
			expectedOutcome: OutcomeOK,
			expectedItems:   2,
		},
		{
			name:            "limit applied",
			slug:            "best-1-colleges-in-india",
			expectedOutcome: OutcomeOK,
			expectedItems:   1,
		},
		{
			name:            "known terms without listings",
			slug:            "top-yoga-colleges-in-pune-bagmati",
			expectedOutcome: OutcomeNoResults,
			expectedMessage: MessageNoResults,
		},
		{
			name:            "location without category",
			slug:            "top-10-in-pune",
			expectedOutcome: OutcomeNoResults,
			expectedMessage: MessageNoResults,
		},
		{
			name:            "unknown location",
			slug:            "top-yoga-colleges-in-atlantis",
			expectedOutcome: OutcomeUnrecognized,
			expectedMessage: MessageUnrecognized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.slug, 1, testInputs())

			assert.Equal(t, tt.expectedOutcome, res.Outcome)
			assert.Equal(t, tt.expectedMessage, res.Message)
			assert.Len(t, res.Page.Items, tt.expectedItems)
			assert.Equal(t, tt.slug, res.Slug)
		})
	}
}

func TestResolve_NormalizesSlug(t *testing.T) {
	res := Resolve("  Top-Yoga-Colleges-In-Pune ", 1, testInputs())

	assert.Equal(t, "top-yoga-colleges-in-pune", res.Slug)
	assert.Equal(t, OutcomeOK, res.Outcome)
	assert.Equal(t, "Pune", res.Query.City)
}

func TestResolve_CorrectsPage(t *testing.T) {
	listings := make([]models.Listing, 0, 45)
	for i := 1; i <= 45; i++ {
		listings = append(listings, models.Listing{
			UniqueID:        fmt.Sprintf("prop-%02d", i),
			Category:        "College",
			PropertyCity:    "Pune",
			PropertyState:   "Maharashtra",
			PropertyCountry: "India",
		})
	}
	in := NewInputs([]models.Category{{CategoryName: "College"}}, listings)

	second := Resolve("top-colleges-in-pune", 2, in)
	require.Len(t, second.Page.Items, PageSize)
	assert.Equal(t, "prop-21", second.Page.Items[0].UniqueID)
	assert.Equal(t, "prop-40", second.Page.Items[19].UniqueID)
	assert.False(t, second.Page.Corrected)

	beyond := Resolve("top-colleges-in-pune", 7, in)
	assert.Equal(t, 1, beyond.Page.Number)
	assert.True(t, beyond.Page.Corrected)
	assert.Equal(t, 3, beyond.Page.TotalPages)
	assert.Equal(t, "prop-01", beyond.Page.Items[0].UniqueID)
}

func TestResolve_HugePageWithoutResults(t *testing.T) {
	for _, slug := range []string{"best-yoga-colleges-in-atlantis", "top-yoga-colleges-in-pune-bagmati"} {
		t.Run(slug, func(t *testing.T) {
			var res Resolution
			require.NotPanics(t, func() { res = Resolve(slug, 1<<62, testInputs()) })

			assert.Equal(t, 1<<62, res.Page.Number)
			assert.Empty(t, res.Page.Items)
			assert.False(t, res.Page.Corrected)
		})
	}
}
