package notam

import (
	"fmt"
)

// InvalidQueryError reports a malformed query. It is always produced before
// any request is issued, so the caller can fix the input and retry.
type InvalidQueryError struct {
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query: %s", e.Reason)
}

func invalidQueryf(format string, args ...interface{}) error {
	return &InvalidQueryError{Reason: fmt.Sprintf(format, args...)}
}

// TransportError reports a failed page request: either a network-level
// failure or a non-2xx provider response. It aborts the whole aggregation;
// no partial result accompanies it.
type TransportError struct {
	Page       int
	StatusCode int    // 0 when the request never produced a response
	Detail     string // provider response body, when available
	Err        error  // underlying network error, when applicable
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notam request for page %d failed: %v", e.Page, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("notam request for page %d returned status %d: %s", e.Page, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("notam request for page %d returned status %d", e.Page, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IncompleteError reports an aggregation that hit the page iteration cap
// without ever satisfying a stop condition, which means the provider kept
// returning pages without converging on its own declared total.
type IncompleteError struct {
	PagesFetched int
	Collected    int
	TotalCount   int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("aggregation incomplete: %d pages fetched, %d of %d reported NOTAMs collected",
		e.PagesFetched, e.Collected, e.TotalCount)
}
