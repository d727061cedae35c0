package scraper

import (
	"errors"
	"fmt"
)

// ErrResolutionNotFound signals that the portal served a known error page
// for the requested id. It is an expected outcome, not a failure: the id is
// recorded as absent and the crawl moves on.
var ErrResolutionNotFound = errors.New("resolution not found")

// StructuralError reports a malformed document: a required element is
// missing or a document invariant does not hold. It is fatal for the one
// document it names and never aborts the crawl.
type StructuralError struct {
	ResolutionID int64
	Element      string
	Detail       string
}

func (e *StructuralError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("resolution %d: malformed document: %s: %s", e.ResolutionID, e.Element, e.Detail)
	}
	return fmt.Sprintf("resolution %d: malformed document: missing required element %s", e.ResolutionID, e.Element)
}

func structuralErr(resolutionID int64, element, detail string) *StructuralError {
	return &StructuralError{ResolutionID: resolutionID, Element: element, Detail: detail}
}
