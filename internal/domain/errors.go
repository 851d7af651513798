package domain

import (
	"errors" // Sentinel errors
	"fmt"    // Error wrapping

	"gorm.io/gorm" // GORM error values
)

// Error taxonomy shared by every component. The API layer maps these with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrTransient          = errors.New("temporarily unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ProductNotFoundError names the product id that could not be resolved
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// Is makes errors.Is(err, ErrNotFound) true
func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Invalid builds an ErrInvalidInput with a message
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// StoreError classifies an error returned by gorm into the taxonomy.
// Errors that are already classified pass through unchanged.
func StoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case isClassified(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default: // connection failures, deadlines, aborted transactions
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}
}

func isClassified(err error) bool {
	for _, target := range []error{ErrInvalidInput, ErrNotFound, ErrForbidden, ErrConflict, ErrTransient, ErrInvalidCredentials} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
