package enquiry

import (
	"os"
	"path/filepath"
	"testing"

	"institute-discovery/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() Request {
	return Request{
		ListingID: "prop-01",
		Name:      "Asha Verma",
		Email:     "asha@example.com",
		Phone:     "+91 98765 43210",
		Message:   "Do you offer weekend batches?",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(r *Request)
		expectedValid bool
		expectedField string
	}{
		{name: "valid", mutate: func(r *Request) {}, expectedValid: true},
		{name: "optional fields empty", mutate: func(r *Request) { r.Phone, r.Message = "", "" }, expectedValid: true},
		{name: "missing listing", mutate: func(r *Request) { r.ListingID = "" }, expectedField: "listingId"},
		{name: "short name", mutate: func(r *Request) { r.Name = "A" }, expectedField: "name"},
		{name: "bad email", mutate: func(r *Request) { r.Email = "asha-at-example" }, expectedField: "email"},
		{name: "bad phone", mutate: func(r *Request) { r.Phone = "call me" }, expectedField: "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := Validate(req, DefaultSchema())

			if tt.expectedValid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeEnquiryValidationFailed))
			stdErr, _ := errors.AsStandardError(err)
			assert.Contains(t, stdErr.Details, tt.expectedField+":")
		})
	}
}

func TestLoadSchema(t *testing.T) {
	schema, err := LoadSchema("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSchema(), schema)

	path := filepath.Join(t.TempDir(), "enquiry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"type": "object",
		"properties": {"listingId": {"type": "string"}, "email": {"type": "string", "format": "email"}},
		"required": ["listingId", "email"]
	}`), 0o600))

	schema, err = LoadSchema(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"listingId", "email"}, schema.Required)

	// the override drops the name constraint
	req := validRequest()
	req.Name = ""
	assert.NoError(t, Validate(req, schema))

	_, err = LoadSchema(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
