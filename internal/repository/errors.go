// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto HTTP statuses: not-found errors become 404 responses,
// ErrConflict becomes 409 and ErrNoChange lets an update handler report
// that nothing was modified.
package repository

import "errors"

// ErrVenueNotFound indicates that a venue was not located in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

// ErrAlbumNotFound indicates that an album was not located in the DB.
var ErrAlbumNotFound = errors.New("album not found")

// ErrProductNotFound indicates that a product was not located in the DB
// or is not active.
var ErrProductNotFound = errors.New("product not found")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrNoChange indicates an UPDATE attempted to set fields equal to current values.
var ErrNoChange = errors.New("no change")
