package services

import (
	"errors"

	"toyblox/internal/repositories"
)

var (
	ErrNotFound          = repositories.ErrNotFound
	ErrConflict          = repositories.ErrConflict
	ErrInsufficientStock = repositories.ErrInsufficientStock

	// ErrInvalidInput marks a request the caller must correct.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials is returned for any failed login, whichever part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)
