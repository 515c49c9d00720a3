package keyword

import (
	"strings"

	"institute-discovery/internal/models"
)

// Outcome classifies a resolution for the presentation layer.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeNoResults    Outcome = "no_results"
	OutcomeUnrecognized Outcome = "unrecognized"
	OutcomeRedirect     Outcome = "redirect"
)

const (
	MessageNoResults    = "No institutes matched this search."
	MessageUnrecognized = "We couldn't find that location or category."
)

// Resolution is the full pipeline output for one slug and page request.
type Resolution struct {
	Slug    string               `json:"slug"`
	Outcome Outcome              `json:"outcome"`
	Message string               `json:"message,omitempty"`
	Query   ParsedKeywordQuery   `json:"query"`
	Page    Page[models.Listing] `json:"page"`
}

// Resolve runs guard, parse, filter and paginate. Slugs without a top/best
// token are not parsed and resolve to OutcomeRedirect.
func Resolve(slug string, page int, in Inputs) Resolution {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !HasIntentToken(slug) {
		return Resolution{
			Slug:    slug,
			Outcome: OutcomeRedirect,
			Page:    Page[models.Listing]{Items: []models.Listing{}, Number: 1},
		}
	}

	q := Parse(slug, in.Categories, in.Locations)
	res := Resolution{
		Slug:  slug,
		Query: q,
		Page:  Paginate(Filter(q, in.Listings), page),
	}

	switch {
	case q.Invalid:
		res.Outcome = OutcomeUnrecognized
		res.Message = MessageUnrecognized
	case res.Page.TotalItems == 0:
		res.Outcome = OutcomeNoResults
		res.Message = MessageNoResults
	default:
		res.Outcome = OutcomeOK
	}

	return res
}
