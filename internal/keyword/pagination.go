package keyword

// PageSize is the fixed number of items on one landing page.
const PageSize = 20

// Page is one slice of a paginated result.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Number     int  `json:"page"`
	TotalPages int  `json:"totalPages"`
	TotalItems int  `json:"totalItems"`
	Corrected  bool `json:"corrected"`
}

// TotalPages returns ceil(n / PageSize).
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// CorrectPage maps an out-of-range page request to page 1. A request past
// the end is only out of range when there is at least one page.
func CorrectPage(requested, totalPages int) int {
	if requested < 1 || (totalPages > 0 && requested > totalPages) {
		return 1
	}
	return requested
}

// Paginate slices items for the requested page, correcting the page number
// first. Corrected tells the caller to rewrite the page parameter.
func Paginate[T any](items []T, requested int) Page[T] {
	total := TotalPages(len(items))
	number := CorrectPage(requested, total)

	// number can exceed total only when there are no pages; never multiply
	// an unbounded request.
	start := len(items)
	if number <= total {
		start = (number - 1) * PageSize
	}
	end := min(start+PageSize, len(items))

	page := Page[T]{
		Items:      items[start:end],
		Number:     number,
		TotalPages: total,
		TotalItems: len(items),
		Corrected:  number != requested,
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page
}
