package ledger

import (
	"context"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

// Store is the persistence boundary of the fee ledger.
type Store interface {
	// GetStudent returns ErrStudentNotFound when the id is unknown.
	GetStudent(ctx context.Context, id uint) (*models.Student, error)

	// ListInstallments returns the student's installments ordered by payment
	// number.
	ListInstallments(ctx context.Context, studentID uint) ([]models.Installment, error)

	// GetReceiptByStudent returns ErrReceiptNotFound when the student has no
	// receipt yet.
	GetReceiptByStudent(ctx context.Context, studentID uint) (*models.FeeReceipt, error)

	// GetReceiptByNumber looks a receipt up by its master receipt number.
	GetReceiptByNumber(ctx context.Context, number string) (*models.FeeReceipt, error)

	// InStudentTx runs fn as one atomic unit: every write staged by fn
	// becomes durable together or not at all. Units for the same student are
	// serialized against each other; units for different students may run
	// concurrently. fn may be retried, so it must not carry state across
	// calls.
	InStudentTx(ctx context.Context, studentID uint, fn func(tx Tx) error) error
}

// Tx is the store as seen from inside one atomic unit.
type Tx interface {
	// CountInstallments counts all installments ever written for the
	// student, including any soft-deleted rows, which keep their numbers.
	CountInstallments(studentID uint) (int64, error)

	ListInstallments(studentID uint) ([]models.Installment, error)

	// GetReceiptForUpdate returns the student's receipt locked for the rest
	// of the unit, or ErrReceiptNotFound.
	GetReceiptForUpdate(studentID uint) (*models.FeeReceipt, error)

	// CountReceipts counts all master receipts ever issued.
	CountReceipts() (int64, error)

	// GetFeeStructure returns ErrFeeNotConfigured when the course has no
	// catalog entry.
	GetFeeStructure(course string) (*models.FeeStructure, error)

	// CreateInstallment returns ErrIdentifierCollision if the installment
	// receipt number or (student, payment number) pair already exists.
	CreateInstallment(inst *models.Installment) error

	// CreateReceipt returns ErrConflict if the master receipt number was
	// taken by a concurrent unit; the orchestrator recomputes it on retry.
	CreateReceipt(receipt *models.FeeReceipt) error

	SaveReceipt(receipt *models.FeeReceipt) error
}
