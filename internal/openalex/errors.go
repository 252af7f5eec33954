package openalex

import (
	"errors"
	"fmt"
)

// Sentinel errors for the gateway failure taxonomy. Callers switch on these
// with errors.Is/errors.As instead of matching message strings.
var (
	// ErrNotFound indicates that a requested entity was not found upstream.
	ErrNotFound = errors.New("not found")

	// ErrUpstream indicates a non-2xx response from the OpenAlex API.
	ErrUpstream = errors.New("upstream error")

	// ErrTransport indicates a connection, DNS, or timeout failure.
	ErrTransport = errors.New("transport error")

	// ErrStorage indicates a local filesystem failure while saving a download.
	ErrStorage = errors.New("storage error")

	// ErrTooLarge indicates a download exceeding the configured maximum size.
	ErrTooLarge = errors.New("download exceeds maximum size")
)

// NotFoundError reports an entity lookup that returned no record.
// Distinct from transport and HTTP failures: the upstream answered, the
// entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// UpstreamError reports a non-2xx HTTP response from the OpenAlex API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface. The message is the exact text
// surfaced to tool callers.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("OpenAlex API error (%d): %s", e.StatusCode, e.Body)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// TransportError reports a request that never produced an HTTP response:
// connection refused, DNS failure, or timeout. Never retried.
type TransportError struct {
	Err error
}

// Error implements the error interface. The message is the exact text
// surfaced to tool callers.
func (e *TransportError) Error() string {
	return fmt.Sprintf("Request failed: %v", e.Err)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *TransportError) Unwrap() error {
	return ErrTransport
}

// StorageError reports a local filesystem failure while saving a download.
type StorageError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to save file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *StorageError) Unwrap() error {
	return ErrStorage
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}
