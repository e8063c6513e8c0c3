package services

import "errors"

var (
	ErrMissingFields       = errors.New("required fields are missing")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrNotFoundOrForbidden = errors.New("product not found or access denied")
	ErrNotFound            = errors.New("record not found")
	ErrAlreadyExists       = errors.New("already exists")
)
