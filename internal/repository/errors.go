package repository

import "errors"

// Sentinel errors shared by all repositories. Services match on these with
// errors.Is and translate them into API-facing failures.
var (
	ErrNotFound    = errors.New("record not found")
	ErrEmailExists = errors.New("email already registered")
)
