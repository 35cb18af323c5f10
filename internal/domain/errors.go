package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing location field, cycle hours out of range).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrNoSegments is returned when log generation is requested for a trip that
// has no route segments to partition. Generating a stack of all-OFF days for
// such a trip would be misleading, so the operation fails instead.
// Handlers should map this to HTTP 400.
var ErrNoSegments = errors.New("no segments")
