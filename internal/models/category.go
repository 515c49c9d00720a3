// internal/models/category.go
package models

// Category is an academic/institution category as served by the catalog API.
type Category struct {
	UniqueID       string `json:"uniqueId"`
	CategoryName   string `json:"category_name"`
	ParentCategory string `json:"parent_category"`
}
