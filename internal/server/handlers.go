package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"institute-discovery/internal/common/errors"
	"institute-discovery/internal/enquiry"
	"institute-discovery/internal/keyword"
	"institute-discovery/internal/search"
)

const maxEnquiryBody = 64 << 10

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message, details string) {
	writeJSON(w, status, map[string]errorBody{
		"error": {Code: code, Message: message, Details: details},
	})
}

func writeStandardError(w http.ResponseWriter, err error) {
	stdErr, ok := errors.AsStandardError(err)
	if !ok {
		writeError(w, http.StatusInternalServerError, string(errors.ErrCodeInternal), "Unexpected error", "")
		return
	}
	writeError(w, statusFor(stdErr.Code), string(stdErr.Code), stdErr.Message, stdErr.Details)
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeEnquiryValidationFailed:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidSlug:
		return http.StatusBadRequest
	case errors.ErrCodeSearchTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeIndexNotFound, errors.ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeSearchQueryFailed, errors.ErrCodeCatalogFetchFailed, errors.ErrCodeListingQueryFailed:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	failing := map[string]string{}
	for name, check := range s.deps.Checks {
		if err := check(ctx); err != nil {
			failing[name] = err.Error()
		}
	}

	if len(failing) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "not_ready",
			"failing": failing,
			"time":    time.Now().Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleHome is the target of guard redirects.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLanding serves /{slug}?page=N. Slugs without top/best redirect
// home. An out-of-range page redirects to the same URL with page=1.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	res, err := s.deps.Resolver.Resolve(r.Context(), slug, requestedPage(r.URL.Query()))
	if err != nil {
		if r.Context().Err() != nil {
			// client went away; the result is stale
			return
		}
		s.logger.Error("keyword resolution failed", map[string]interface{}{"slug": slug, "error": err})
		writeStandardError(w, err)
		return
	}

	switch {
	case res.Outcome == keyword.OutcomeRedirect:
		http.Redirect(w, r, "/", http.StatusFound)
	case res.Page.Corrected:
		http.Redirect(w, r, withPage(r.URL, res.Page.Number), http.StatusFound)
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

// requestedPage returns 1 when page is absent and 0 when it does not
// parse, so that garbage is corrected like any other out-of-range page.
func requestedPage(q url.Values) int {
	raw := q.Get("page")
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func withPage(u *url.URL, page int) string {
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	out := *u
	out.RawQuery = q.Encode()
	return out.RequestURI()
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.deps.Searcher == nil {
		writeError(w, http.StatusServiceUnavailable, string(errors.ErrCodeInternal), "Search is not configured", "")
		return
	}

	q := r.URL.Query()
	var rawTypes []string
	for _, v := range q["type"] {
		rawTypes = append(rawTypes, strings.Split(v, ",")...)
	}
	types, err := search.ParseTypes(rawTypes)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_SEARCH_INPUT", err.Error(), "")
		return
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_SEARCH_INPUT", "limit must be a number", "")
			return
		}
	}

	res, err := s.deps.Searcher.Search(r.Context(), search.Query{Text: q.Get("q"), Types: types, Limit: limit})
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		if stderrors.Is(err, search.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "INVALID_SEARCH_INPUT", err.Error(), "")
			return
		}
		writeStandardError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleEnquiry(w http.ResponseWriter, r *http.Request) {
	if s.deps.Submitter == nil {
		writeError(w, http.StatusServiceUnavailable, string(errors.ErrCodeInternal), "Enquiries are not configured", "")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxEnquiryBody+1))
	if err != nil || len(body) > maxEnquiryBody {
		writeError(w, http.StatusRequestEntityTooLarge, string(errors.ErrCodeEnquiryValidationFailed), "Request body too large", "")
		return
	}

	var req enquiry.Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeEnquiryValidationFailed), "Malformed JSON body", err.Error())
		return
	}

	receipt, err := s.deps.Submitter.Submit(r.Context(), req)
	if err != nil {
		writeStandardError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, receipt)
}
