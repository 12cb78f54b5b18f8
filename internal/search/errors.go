package search

import "fmt"

// ProviderError reports a failed provider request mid-retrieval. The
// retriever aborts pagination when one occurs but still returns the
// records accumulated so far, so callers should treat it as a warning
// attached to a partial result rather than a total failure.
type ProviderError struct {
	// Op is the request that failed: "search" or "details".
	Op string
	// Page is the 1-based page number being processed when the
	// request failed.
	Page int
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s request failed on page %d: %v", e.Op, e.Page, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
