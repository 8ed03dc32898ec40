package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrValidation is the sentinel all user-correctable validation failures
// match via errors.Is. Validation errors block submission and are resolved
// entirely before any store call is made.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a single broken assignment rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InvalidChargeValueError is a validation failure specific to the numeric
// bounds of a driver charge.
type InvalidChargeValueError struct {
	DriverID   string
	ChargeType ChargeType
	Value      decimal.Decimal
	Reason     string
}

func (e *InvalidChargeValueError) Error() string {
	return fmt.Sprintf("invalid charge value %s for driver %s (%s): %s",
		e.Value.String(), e.DriverID, e.ChargeType, e.Reason)
}

func (e *InvalidChargeValueError) Is(target error) bool {
	return target == ErrValidation
}

// PersistenceError means the submission reached the store but failed.
// The draft is intact; the user may edit and retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotificationError is non-fatal: the leg is already committed when
// notification runs, so this is reported as a warning and never reverts
// the commit.
type NotificationError struct {
	DriverID string
	Err      error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify driver %s: %v", e.DriverID, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// ErrSubmitInFlight rejects a second Submit while one is pending,
// guaranteeing at most one store write per submission.
var ErrSubmitInFlight = errors.New("submit already in flight")
