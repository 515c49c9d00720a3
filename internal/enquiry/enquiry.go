// Package enquiry accepts prospective-student enquiries about a listing,
// stores them and notifies the operations team.
package enquiry

import "time"

const (
	StatusSubmitted = "submitted"
	StatusInvalid   = "invalid"
	StatusFailed    = "failed"
)

// Request is the enquiry form as posted by a visitor.
type Request struct {
	ListingID string `json:"listingId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Enquiry is a stored enquiry.
type Enquiry struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listingId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Receipt struct {
	EnquiryID     string   `json:"enquiryId"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"createdAt"` // RFC 3339
	Notifications []string `json:"notifications,omitempty"`
}
