package errors

import (
	"fmt"
)

// ErrConfiguration is returned when a required setting is missing or invalid
type ErrConfiguration struct {
	Key    string
	Reason string
}

func (e *ErrConfiguration) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// ErrNetwork is returned when the API is unreachable or a request times out
type ErrNetwork struct {
	Op  string
	Err error
}

func (e *ErrNetwork) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *ErrNetwork) Unwrap() error {
	return e.Err
}

// ErrAPI is returned on a non-2xx response or a GraphQL-level error
type ErrAPI struct {
	Status  int
	Message string
}

func (e *ErrAPI) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("shopify API error: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("shopify API error: %s", e.Message)
}

// ErrFileFormat is returned when an input file cannot be parsed or fails validation
type ErrFileFormat struct {
	Path   string
	Reason string
}

func (e *ErrFileFormat) Error() string {
	return fmt.Sprintf("invalid file %s: %s", e.Path, e.Reason)
}
