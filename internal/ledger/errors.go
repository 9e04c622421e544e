package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrStudentNotFound means the payment references an unknown student.
	ErrStudentNotFound = errors.New("student not found")

	// ErrReceiptNotFound means the student has no receipt yet, or no receipt
	// exists with the requested number.
	ErrReceiptNotFound = errors.New("fee receipt not found")

	// ErrFeeNotConfigured aborts a first payment when no catalog entry exists
	// for the student's course and the caller supplied no total fee.
	ErrFeeNotConfigured = errors.New("no fee structure configured for course")

	// ErrOverpayment rejects a payment that exceeds the remaining balance.
	ErrOverpayment = errors.New("amount exceeds remaining balance")

	// ErrIdentifierCollision signals a duplicate receipt number where the
	// per-student serialization should have made one impossible. It is never
	// retried.
	ErrIdentifierCollision = errors.New("receipt number already exists")

	// ErrConflict is a concurrent-write conflict detected by the store. The
	// orchestrator retries the whole atomic unit a bounded number of times.
	ErrConflict = errors.New("concurrent write conflict")
)

// ValidationError rejects a payment request before anything is persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
