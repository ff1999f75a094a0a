package services

import (
	"errors"
	"fmt"

	"foodnow-api/repository"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidState       = errors.New("invalid state")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid password reset token")
	ErrTokenExpired       = errors.New("password reset token has expired")
	ErrValidation         = errors.New("validation failed")
)

// notFound turns gorm's missing-row error into ErrNotFound and passes other errors through
func notFound(err error, what string) error {
	if repository.IsNotFound(err) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
