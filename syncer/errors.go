package syncer

import (
	"errors"
	"fmt"
)

// ErrNotConfigured flags a source whose URL still holds the setup
// placeholder. Such sources are skipped without a network call.
var ErrNotConfigured = errors.New("URL not configured")

// FetchReason discriminates the ways a fetch can fail.
type FetchReason int

const (
	ReasonConnection FetchReason = iota
	ReasonHTTPStatus
	ReasonTimeout
)

func (r FetchReason) String() string {
	switch r {
	case ReasonHTTPStatus:
		return "http-status"
	case ReasonTimeout:
		return "timeout"
	default:
		return "connection"
	}
}

// FetchError is the failure record for a single fetch attempt. Status is
// only set for the ReasonHTTPStatus reason.
type FetchError struct {
	Reason FetchReason
	Status int
}

func (e *FetchError) Error() string {
	switch e.Reason {
	case ReasonHTTPStatus:
		return fmt.Sprintf("HTTP %d - sheet may not be published", e.Status)
	case ReasonTimeout:
		return "timeout - Google Sheets may be slow"
	default:
		return "cannot connect - check internet/URL"
	}
}
