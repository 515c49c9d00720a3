package enquiry

import (
	"fmt"
	"os"
	"strings"

	"institute-discovery/internal/common/errors"
	"institute-discovery/internal/common/validation"
)

// DefaultSchema describes a valid Request.
func DefaultSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"listingId": {Type: "string", MinLength: validation.Int(1), MaxLength: validation.Int(64)},
			"name":      {Type: "string", MinLength: validation.Int(2), MaxLength: validation.Int(100)},
			"email":     {Type: "string", Format: "email", MaxLength: validation.Int(254)},
			"phone":     {Type: "string", Pattern: `^\+?[0-9][0-9 ()-]{6,19}$`},
			"message":   {Type: "string", MaxLength: validation.Int(2000)},
		},
		Required:             []string{"listingId", "name", "email"},
		AdditionalProperties: validation.Bool(false),
	}
}

// LoadSchema reads a schema override from path. An empty path returns
// DefaultSchema.
func LoadSchema(path string) (validation.JSONSchema, error) {
	if path == "" {
		return DefaultSchema(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return validation.JSONSchema{}, fmt.Errorf("read enquiry schema: %w", err)
	}
	schema, err := validation.GetSchemaFromJSON(string(raw))
	if err != nil {
		return validation.JSONSchema{}, fmt.Errorf("parse enquiry schema %s: %w", path, err)
	}
	return schema, nil
}

// Validate checks req against schema. Field errors are joined into the
// details of an ENQUIRY_VALIDATION_FAILED error.
func Validate(req Request, schema validation.JSONSchema) error {
	result, err := validation.ValidateInput(req, schema)
	if err != nil {
		return err
	}
	if !result.Valid {
		return errors.NewEnquiryValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}
