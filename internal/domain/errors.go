package domain

import "errors"

// Sentinel errors shared across the application. Services wrap them with
// context via fmt.Errorf and %w; the HTTP layer maps them onto status codes
// with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrInvalidInput     = errors.New("invalid input")
	ErrGeocodeNoResults = errors.New("address could not be resolved")
)
