package services

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. All of these are expected, recoverable conditions
// that the handler layer translates into 4xx responses; state is never
// mutated when one of them is returned.
var (
	ErrDuplicateCredential  = errors.New("username or email already registered")
	ErrInvalidCredential    = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateProjectID   = errors.New("project id already exists")
	ErrProjectNotFound      = errors.New("project not found")
	ErrNotAMember           = errors.New("user is not a member of this project")
	ErrHardwareNotFound     = errors.New("hardware set not found")
	ErrDuplicateHardwareSet = errors.New("hardware set already exists")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrInvalidCapacity      = errors.New("capacity must be a positive integer")
)

// InsufficientAvailabilityError is returned when a checkout requests more
// units than the hardware set currently has free. It carries the actual
// available count for display.
type InsufficientAvailabilityError struct {
	Requested int
	Available int
}

func (e *InsufficientAvailabilityError) Error() string {
	return fmt.Sprintf("insufficient availability: requested %d, available %d", e.Requested, e.Available)
}

// OverReturnError is returned when a check-in would return more units than
// the project currently holds for that hardware set.
type OverReturnError struct {
	Requested int
	Reserved  int
}

func (e *OverReturnError) Error() string {
	return fmt.Sprintf("cannot check in %d units: project holds only %d", e.Requested, e.Reserved)
}
