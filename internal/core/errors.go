package core

import (
	"errors"
	"fmt"

	"github.com/JonMunkholm/exoarchive/internal/schema"
)

var (
	// ErrFetchFailed is wrapped by every failure to retrieve the CSV source.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrSchemaNotFound means the fetched text has no archive header line.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrUnknownView is returned for view keys that are not registered.
	ErrUnknownView = errors.New("unknown view")

	// ErrSourceTooLarge means the fetched body exceeded the configured limit.
	ErrSourceTooLarge = errors.New("source too large")
)

// FetchError describes a failed retrieval of the CSV resource.
type FetchError struct {
	Path       string
	StatusCode int // 0 for transport-level failures
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch failed: %s: HTTP %d", e.Path, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fetch failed: %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("fetch failed: %s", e.Path)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFetchFailed) match any FetchError.
func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// SchemaNotFoundError means no line of the input starts with the header prefix.
type SchemaNotFoundError struct {
	Prefix       string
	LinesScanned int
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema not found: no line starts with %q (%d lines scanned)", e.Prefix, e.LinesScanned)
}

// Is lets errors.Is(err, ErrSchemaNotFound) match any SchemaNotFoundError.
func (e *SchemaNotFoundError) Is(target error) bool { return target == ErrSchemaNotFound }

func newSchemaNotFound(lines int) *SchemaNotFoundError {
	return &SchemaNotFoundError{Prefix: schema.HeaderPrefix, LinesScanned: lines}
}

// IsRecoverable reports whether a load error should be answered with
// fallback data instead of a failure.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrFetchFailed) || errors.Is(err, ErrSchemaNotFound) || errors.Is(err, ErrSourceTooLarge)
}
