// internal/workers/enquiry/submit-enquiry/models.go
package submitenquiry

type Input struct {
	ListingID string `json:"listingId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message,omitempty"`
}

type Output struct {
	EnquiryID     string   `json:"enquiryId"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"createdAt"` // ISO 8601
	Notifications []string `json:"notifications"`
}
