package service

import (
	"errors"
	"fmt"

	"socialhub/internal/repository"
)

// Error categories surfaced to the transport layer. Causes are joined onto
// them so errors.Is works for both the category and the underlying error.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrForbidden      = errors.New("forbidden")
	ErrValidation     = errors.New("validation failed")
	ErrUpload         = errors.New("media upload failed")
	ErrPersistence    = errors.New("persistence failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
)

func categorize(category, cause error) error {
	return fmt.Errorf("%w: %w", category, cause)
}

// storeError classifies a repository error.
func storeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return categorize(ErrNotFound, err)
	case errors.Is(err, repository.ErrDuplicate):
		return categorize(ErrConflict, err)
	default:
		return categorize(ErrPersistence, err)
	}
}
