package domain

import (
	"fmt"     // Error wrapping
	"regexp"  // Status format check
	"strings" // String normalization
)

// Status of an order
type Status string

// Known statuses. Any well-formed value is accepted by ValidateTransition.
const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

var statusPattern = regexp.MustCompile(`^[A-Z][A-Z_]{0,31}$`)

// ParseStatus normalizes raw input to an upper-case status
func ParseStatus(raw string) (Status, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !statusPattern.MatchString(s) {
		return "", fmt.Errorf("%w: status %q is not valid", ErrInvalidInput, raw)
	}
	return Status(s), nil
}

// ValidateTransition decides whether an order may move from one status to another.
// Every well-formed target is allowed; a state machine would be enforced here.
func ValidateTransition(from, to Status) error {
	if _, err := ParseStatus(string(to)); err != nil {
		return err
	}
	return nil
}
