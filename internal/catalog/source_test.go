package catalog

import (
	"context"
	"sync/atomic"

	"institute-discovery/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeSource struct {
	name        string
	categories  []models.Category
	listings    []models.Listing
	categoryErr error
	listingErr  error
	block       bool

	categoryCalls atomic.Int32
	listingCalls  atomic.Int32
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Categories(ctx context.Context) ([]models.Category, error) {
	f.categoryCalls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.categories, f.categoryErr
}

func (f *fakeSource) Listings(ctx context.Context) ([]models.Listing, error) {
	f.listingCalls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.listings, f.listingErr
}

func sampleCategories() []models.Category {
	return []models.Category{
		{UniqueID: "cat-1", CategoryName: "Yoga College"},
		{UniqueID: "cat-2", CategoryName: "College", ParentCategory: "Education"},
	}
}

func sampleListings() []models.Listing {
	return []models.Listing{
		{
			UniqueID: "prop-01", PropertyName: "Sunrise Yoga College", Category: "Yoga College",
			PropertyCity: "Pune", PropertyState: "Maharashtra", PropertyCountry: "India",
			Status: models.ListingStatusActive, Rank: 1,
		},
		{
			UniqueID: "prop-02", PropertyName: "Valley College", Category: "College",
			PropertyCity: "Kathmandu", PropertyState: "Bagmati", PropertyCountry: "Nepal",
			Status: models.ListingStatusActive, Rank: 2,
		},
	}
}
