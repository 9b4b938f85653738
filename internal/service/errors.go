package service

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("resource not found")

// Inventory and booking lifecycle errors. These are expected business-rule
// outcomes and must be returned, never panicked; a failure leaves the ledger
// and the booking table unchanged.
var (
	ErrInsufficientInventory    = errors.New("not enough tickets available")
	ErrCancellationWindowClosed = errors.New("cannot cancel within 3 days of the event")
	ErrAlreadyCancelled         = errors.New("booking is already cancelled")
	ErrNotPending               = errors.New("booking is not in pending status")
	ErrNotConfirmed             = errors.New("booking is not in confirmed status")
	ErrEventInactive            = errors.New("event is not active")
)

// Review and favorite gating errors.
var (
	ErrNotEligible     = errors.New("only attendees with a qualifying booking can review")
	ErrDuplicateReview = errors.New("event already reviewed by this user")
)

// Catalog and account errors.
var (
	ErrNotHost       = errors.New("only registered hosts can manage events")
	ErrNotOwner      = errors.New("event belongs to another host")
	ErrSlugTaken     = errors.New("slug is already in use")
	ErrUsernameTaken = errors.New("username is already taken")
)

// ValidationError reports bad input shape or range and names the violated
// field so callers can surface it next to the offending form value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
