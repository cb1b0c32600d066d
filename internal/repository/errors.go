// Package repository holds the MySQL data access layer. Sentinel errors
// defined here let handlers distinguish failure scenarios without inspecting
// driver-specific error strings.
package repository

import "errors"

// ErrHallNotFound is returned when a hall lookup fails. Handlers translate
// this into an HTTP 404 response.
var ErrHallNotFound = errors.New("hall not found")

// ErrHallExists is returned when creating a hall whose name is already
// taken. Hall names are unique across the platform.
var ErrHallExists = errors.New("hall already exists")

// ErrEmailExists is returned when registering with an email that is already
// in use.
var ErrEmailExists = errors.New("email already exists")
