package domain

import (
	"errors"
	"fmt"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// Client input errors.
var (
	ErrMissingParameter   = errors.New("missing parameter")
	ErrInvalidFilterField = errors.New("invalid filter field")
	ErrInvalidFilterValue = errors.New("invalid filter value")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrIDMismatch         = errors.New("id does not match address")
)

// Geocoding errors.
var (
	ErrGeocodeNotFound = errors.New("no coordinates found for address")
	ErrLookupFailed    = errors.New("geocoding lookup failed")
	ErrInvalidDistance = errors.New("distance could not be computed")
)
