package scrape

import (
	"errors"
	"fmt"
)

var (
	// ErrLoadTimeout means the page never reached its expected state
	// within the configured wait.
	ErrLoadTimeout = errors.New("page load timeout")

	// ErrInvalidRace means the site answered with its "no such race"
	// indicator instead of a race card.
	ErrInvalidRace = errors.New("race not found on source site")
)

// MetadataError reports a required metadata node or pattern that could not
// be read from the race page. It always aborts the whole race scrape.
type MetadataError struct {
	Field  string
	Reason string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("race metadata: %s: %s", e.Field, e.Reason)
}

// UpsertError wraps a storage failure during the scrape transaction.
type UpsertError struct {
	Entity string
	Key    string
	Err    error
}

func (e *UpsertError) Error() string {
	return fmt.Sprintf("upsert %s %q: %v", e.Entity, e.Key, e.Err)
}

func (e *UpsertError) Unwrap() error { return e.Err }
