package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP statuses with errors.Is.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidRole        = errors.New("invalid role")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
)
