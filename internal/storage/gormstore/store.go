// Package gormstore persists the fee ledger in Postgres through GORM.
package gormstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/ledger"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

// ledgerLockSpace namespaces the per-student advisory locks so they cannot
// collide with advisory locks taken elsewhere in the application.
const ledgerLockSpace = int64(0x4C454447)

type Store struct {
	db *gorm.DB
}

var _ ledger.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetStudent(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (s *Store) ListInstallments(ctx context.Context, studentID uint) ([]models.Installment, error) {
	return listInstallments(s.db.WithContext(ctx), studentID)
}

func (s *Store) GetReceiptByStudent(ctx context.Context, studentID uint) (*models.FeeReceipt, error) {
	var receipt models.FeeReceipt
	err := s.db.WithContext(ctx).Where("student_id = ?", studentID).First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrReceiptNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

func (s *Store) GetReceiptByNumber(ctx context.Context, number string) (*models.FeeReceipt, error) {
	var receipt models.FeeReceipt
	err := s.db.WithContext(ctx).Where("receipt_number = ?", number).First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrReceiptNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// InStudentTx wraps fn in a database transaction that holds a per-student
// advisory lock for its whole duration. Two payments for the same student are
// therefore serialized end to end; payments for different students only ever
// contend on the master receipt sequence, which surfaces as ErrConflict.
func (s *Store) InStudentTx(ctx context.Context, studentID uint, fn func(tx ledger.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", advisoryLockKey(studentID)).Error; err != nil {
			return err
		}
		return fn(&gormTx{db: tx})
	})
}

func advisoryLockKey(studentID uint) int64 {
	return ledgerLockSpace<<32 | int64(uint32(studentID))
}

type gormTx struct {
	db *gorm.DB
}

var _ ledger.Tx = (*gormTx)(nil)

// CountInstallments counts unscoped: a soft-deleted installment still
// occupies its payment number.
func (t *gormTx) CountInstallments(studentID uint) (int64, error) {
	var n int64
	err := t.db.Unscoped().Model(&models.Installment{}).
		Where("student_id = ?", studentID).Count(&n).Error
	return n, err
}

func (t *gormTx) ListInstallments(studentID uint) ([]models.Installment, error) {
	return listInstallments(t.db, studentID)
}

func (t *gormTx) GetReceiptForUpdate(studentID uint) (*models.FeeReceipt, error) {
	var receipt models.FeeReceipt
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ?", studentID).First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrReceiptNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

func (t *gormTx) CountReceipts() (int64, error) {
	var n int64
	err := t.db.Unscoped().Model(&models.FeeReceipt{}).Count(&n).Error
	return n, err
}

func (t *gormTx) GetFeeStructure(course string) (*models.FeeStructure, error) {
	var fs models.FeeStructure
	if err := t.db.Where("course = ?", course).First(&fs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrFeeNotConfigured
		}
		return nil, err
	}
	return &fs, nil
}

func (t *gormTx) CreateInstallment(inst *models.Installment) error {
	err := t.db.Create(inst).Error
	if isDuplicate(err, "idx_installments_receipt_number") ||
		isDuplicate(err, "idx_installments_student_payment") {
		return ledger.ErrIdentifierCollision
	}
	return err
}

func (t *gormTx) CreateReceipt(receipt *models.FeeReceipt) error {
	err := t.db.Create(receipt).Error
	if isDuplicate(err, "idx_fee_receipts_receipt_number") ||
		isDuplicate(err, "idx_fee_receipts_student_id") {
		return ledger.ErrConflict
	}
	return err
}

func (t *gormTx) SaveReceipt(receipt *models.FeeReceipt) error {
	return t.db.Save(receipt).Error
}

func listInstallments(db *gorm.DB, studentID uint) ([]models.Installment, error) {
	installments := make([]models.Installment, 0)
	err := db.Where("student_id = ?", studentID).
		Order("payment_number asc").Find(&installments).Error
	return installments, err
}

// isDuplicate recognizes a Postgres unique violation on a named constraint.
func isDuplicate(err error, constraint string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(strings.ToLower(msg), "duplicate key value") &&
		strings.Contains(msg, constraint)
}
