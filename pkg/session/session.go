// Package session tracks the state of one ongoing catalog search: the
// query, the current page, accumulated results, and the more-pages flag.
package session

import (
	"strings"

	"trailerdl/pkg/catalog"
)

// PageSize is the catalog's listing page size. A page with fewer results
// marks the end of the result set.
const PageSize = 10

// ValidationError reports input rejected before any network call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Session is the state of one active search. A Session is not safe for
// concurrent use; the orchestrator's single-flight guard is the sole
// mutual-exclusion mechanism.
type Session struct {
	Query       string
	Page        int
	HasMore     bool
	Accumulated []catalog.Video
}

// Start resets the session for a new query. The query is trimmed; an empty
// result fails with a ValidationError and leaves the session untouched.
func (s *Session) Start(query string) error {
	q := strings.TrimSpace(query)
	if q == "" {
		return &ValidationError{Msg: "Please enter an actress name"}
	}

	s.Query = q
	s.Page = 1
	s.HasMore = true
	s.Accumulated = nil

	return nil
}

// Active reports whether a search has been started.
func (s *Session) Active() bool {
	return s.Query != ""
}

// NextPage advances to the next page and returns its number. Callers gate
// on HasMore before advancing.
func (s *Session) NextPage() int {
	s.Page++
	return s.Page
}

// ApplyPage folds one page of results into the session and returns the
// number of videos on that page (the count the UI displays; it is the
// latest page's count, not a cumulative total). When clear is set the
// accumulated list is replaced, otherwise the page is appended.
func (s *Session) ApplyPage(videos []catalog.Video, clear bool) int {
	if clear {
		s.Accumulated = append([]catalog.Video(nil), videos...)
	} else {
		s.Accumulated = append(s.Accumulated, videos...)
	}

	// Once false, HasMore stays false for the rest of the session.
	s.HasMore = s.HasMore && fullPage(len(videos))

	return len(videos)
}

// fullPage is the "full page implies more pages" heuristic. The catalog
// API returns neither a total count nor an explicit more flag, so a full
// page is the only available signal. Isolated here so an explicit wire
// field could replace it.
func fullPage(n int) bool {
	return n >= PageSize
}
