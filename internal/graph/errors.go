package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for the query taxonomy. Callers match with errors.Is;
// AmbiguousNameError additionally carries the candidate list via errors.As.
var (
	ErrPersonNotFound         = errors.New("person not found")
	ErrPlaceNotFound          = errors.New("place not found")
	ErrEventNotFound          = errors.New("event not found")
	ErrNoPathFound            = errors.New("no path found")
	ErrReferenceNotRecognized = errors.New("reference not recognized")
)

// AmbiguousNameError is returned when a single resolution was requested but
// several candidates ranked equally. The caller may resubmit with a more
// specific name or present the candidates for selection.
type AmbiguousNameError struct {
	Name       string
	Candidates []Candidate
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("name %q is ambiguous (%d equally ranked candidates)", e.Name, len(e.Candidates))
}

// notFoundError wraps a not-found sentinel with the identifier or name that
// failed to resolve, so the caller can retry with a corrected input.
type notFoundError struct {
	kind EntityKind
	key  string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.kind, e.key)
}

// PlaceNotFound builds a typed not-found failure for a place name or id.
func PlaceNotFound(key string) error {
	return &notFoundError{kind: KindPlace, key: key}
}

func (e *notFoundError) Unwrap() error {
	switch e.kind {
	case KindPlace:
		return ErrPlaceNotFound
	case KindEvent:
		return ErrEventNotFound
	default:
		return ErrPersonNotFound
	}
}
