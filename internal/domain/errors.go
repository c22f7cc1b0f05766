package domain

import "errors"

// Error kinds surfaced by the catalog. Callers match them with errors.Is;
// the HTTP layer maps them to status codes.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAlreadyExists   = errors.New("already exists")
)
