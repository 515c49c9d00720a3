// internal/models/listing.go
package models

// Listing is an institute/property record eligible for keyword landing pages.
type Listing struct {
	UniqueID        string `json:"uniqueId"`
	PropertyName    string `json:"property_name"`
	PropertySlug    string `json:"property_slug,omitempty"`
	Category        string `json:"category"`
	PropertyCity    string `json:"property_city"`
	PropertyState   string `json:"property_state"`
	PropertyCountry string `json:"property_country"`
	Status          string `json:"status"`
	Rank            int    `json:"rank"`
}

// Listing status values used by the catalog.
const (
	ListingStatusActive   = "active"
	ListingStatusInactive = "inactive"
)
