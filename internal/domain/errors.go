package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	// ErrUpstreamUnavailable means the content API could not produce a result
	// (network, auth, rate limit or server failure after client retries).
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrDepthExceeded means a block tree was deeper than the configured bound.
	// Returned alongside partial results; callers may treat it as a warning.
	ErrDepthExceeded = errors.New("block tree depth exceeded")

	// ErrUnsupported marks an input shape (block or property type) with no mapping.
	ErrUnsupported = errors.New("unsupported shape")
)

// UpstreamError records which remote operation failed.
// Matches ErrUpstreamUnavailable with errors.Is.
type UpstreamError struct {
	Op    string // e.g. "query_collection", "get_children"
	ID    string
	Cause error
}

func (e *UpstreamError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("upstream %s %s: %v", e.Op, e.ID, e.Cause)
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Cause)
}

func (e *UpstreamError) Unwrap() error { return e.Cause }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstreamUnavailable }

// StatusCode implements the HTTPError interface
func (e *UpstreamError) StatusCode() int { return http.StatusBadGateway }
