// Package memstore is an in-memory ledger.Store backing the test suite.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/ledger"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

type Store struct {
	mu        sync.Mutex
	studentMu map[uint]*sync.Mutex

	students      map[uint]models.Student
	feeStructures map[string]models.FeeStructure
	installments  map[uint][]models.Installment // by student, ordered by payment number
	receipts      map[uint]models.FeeReceipt    // by student

	receiptNumbers     map[string]uint // master receipt number -> student
	installmentNumbers map[string]bool

	nextStudentID     uint
	nextInstallmentID uint
	nextReceiptID     uint
}

var _ ledger.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		studentMu:          make(map[uint]*sync.Mutex),
		students:           make(map[uint]models.Student),
		feeStructures:      make(map[string]models.FeeStructure),
		installments:       make(map[uint][]models.Installment),
		receipts:           make(map[uint]models.FeeReceipt),
		receiptNumbers:     make(map[string]uint),
		installmentNumbers: make(map[string]bool),
	}
}

// AddStudent stores a student and assigns its ID.
func (s *Store) AddStudent(student *models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextStudentID++
	student.ID = s.nextStudentID
	student.CreatedAt = time.Now()
	s.students[student.ID] = *student
}

// PutFeeStructure upserts a catalog entry for a course.
func (s *Store) PutFeeStructure(fs models.FeeStructure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeStructures[fs.Course] = fs
}

func (s *Store) GetStudent(_ context.Context, id uint) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	student, ok := s.students[id]
	if !ok {
		return nil, ledger.ErrStudentNotFound
	}
	return &student, nil
}

func (s *Store) ListInstallments(_ context.Context, studentID uint) ([]models.Installment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyInstallments(s.installments[studentID]), nil
}

func (s *Store) GetReceiptByStudent(_ context.Context, studentID uint) (*models.FeeReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	receipt, ok := s.receipts[studentID]
	if !ok {
		return nil, ledger.ErrReceiptNotFound
	}
	return &receipt, nil
}

func (s *Store) GetReceiptByNumber(_ context.Context, number string) (*models.FeeReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	studentID, ok := s.receiptNumbers[number]
	if !ok {
		return nil, ledger.ErrReceiptNotFound
	}
	receipt := s.receipts[studentID]
	return &receipt, nil
}

// InStudentTx serializes units for the same student with a per-student mutex
// and stages all writes until fn returns. Commit re-checks identifier
// uniqueness against state other students' units may have published in the
// meantime, mirroring the unique constraints of the SQL store.
func (s *Store) InStudentTx(_ context.Context, studentID uint, fn func(tx ledger.Tx) error) error {
	lock := s.lockFor(studentID)
	lock.Lock()
	defer lock.Unlock()

	tx := &memTx{store: s, studentID: studentID}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

func (s *Store) lockFor(studentID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.studentMu[studentID]
	if !ok {
		lock = &sync.Mutex{}
		s.studentMu[studentID] = lock
	}
	return lock
}

type memTx struct {
	store     *Store
	studentID uint

	createdReceipt      *models.FeeReceipt
	savedReceipt        *models.FeeReceipt
	createdInstallments []models.Installment
}

var _ ledger.Tx = (*memTx)(nil)

func (t *memTx) CountInstallments(studentID uint) (int64, error) {
	t.store.mu.Lock()
	committed := len(t.store.installments[studentID])
	t.store.mu.Unlock()
	staged := 0
	for _, inst := range t.createdInstallments {
		if inst.StudentID == studentID {
			staged++
		}
	}
	return int64(committed + staged), nil
}

func (t *memTx) ListInstallments(studentID uint) ([]models.Installment, error) {
	t.store.mu.Lock()
	installments := copyInstallments(t.store.installments[studentID])
	t.store.mu.Unlock()
	for _, inst := range t.createdInstallments {
		if inst.StudentID == studentID {
			installments = append(installments, inst)
		}
	}
	sort.Slice(installments, func(i, j int) bool {
		return installments[i].PaymentNumber < installments[j].PaymentNumber
	})
	return installments, nil
}

func (t *memTx) GetReceiptForUpdate(studentID uint) (*models.FeeReceipt, error) {
	if t.createdReceipt != nil && t.createdReceipt.StudentID == studentID {
		receipt := *t.createdReceipt
		return &receipt, nil
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	receipt, ok := t.store.receipts[studentID]
	if !ok {
		return nil, ledger.ErrReceiptNotFound
	}
	return &receipt, nil
}

func (t *memTx) CountReceipts() (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	n := int64(len(t.store.receipts))
	if t.createdReceipt != nil {
		n++
	}
	return n, nil
}

func (t *memTx) GetFeeStructure(course string) (*models.FeeStructure, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	fs, ok := t.store.feeStructures[course]
	if !ok {
		return nil, ledger.ErrFeeNotConfigured
	}
	return &fs, nil
}

func (t *memTx) CreateInstallment(inst *models.Installment) error {
	t.store.mu.Lock()
	if t.store.installmentNumbers[inst.ReceiptNumber] {
		t.store.mu.Unlock()
		return ledger.ErrIdentifierCollision
	}
	t.store.nextInstallmentID++
	inst.ID = t.store.nextInstallmentID
	t.store.mu.Unlock()

	inst.CreatedAt = time.Now()
	t.createdInstallments = append(t.createdInstallments, *inst)
	return nil
}

func (t *memTx) CreateReceipt(receipt *models.FeeReceipt) error {
	t.store.mu.Lock()
	if _, taken := t.store.receiptNumbers[receipt.ReceiptNumber]; taken {
		t.store.mu.Unlock()
		return ledger.ErrConflict
	}
	t.store.nextReceiptID++
	receipt.ID = t.store.nextReceiptID
	t.store.mu.Unlock()

	receipt.CreatedAt = time.Now()
	staged := *receipt
	t.createdReceipt = &staged
	return nil
}

func (t *memTx) SaveReceipt(receipt *models.FeeReceipt) error {
	staged := *receipt
	t.savedReceipt = &staged
	if t.createdReceipt != nil && t.createdReceipt.StudentID == receipt.StudentID {
		t.createdReceipt = &staged
	}
	return nil
}

// commit publishes the staged writes, re-validating global uniqueness first.
// Nothing is published on error, so a failed unit leaves the store untouched.
func (t *memTx) commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if t.createdReceipt != nil {
		if _, taken := t.store.receiptNumbers[t.createdReceipt.ReceiptNumber]; taken {
			return ledger.ErrConflict
		}
	}
	for _, inst := range t.createdInstallments {
		if t.store.installmentNumbers[inst.ReceiptNumber] {
			return ledger.ErrIdentifierCollision
		}
	}

	if t.createdReceipt != nil {
		t.store.receiptNumbers[t.createdReceipt.ReceiptNumber] = t.createdReceipt.StudentID
	}
	if t.savedReceipt != nil {
		t.savedReceipt.UpdatedAt = time.Now()
		t.store.receipts[t.savedReceipt.StudentID] = *t.savedReceipt
	} else if t.createdReceipt != nil {
		t.store.receipts[t.createdReceipt.StudentID] = *t.createdReceipt
	}
	for _, inst := range t.createdInstallments {
		t.store.installmentNumbers[inst.ReceiptNumber] = true
		t.store.installments[inst.StudentID] = append(t.store.installments[inst.StudentID], inst)
		sort.Slice(t.store.installments[inst.StudentID], func(i, j int) bool {
			return t.store.installments[inst.StudentID][i].PaymentNumber < t.store.installments[inst.StudentID][j].PaymentNumber
		})
	}
	return nil
}

func copyInstallments(src []models.Installment) []models.Installment {
	dst := make([]models.Installment, len(src))
	copy(dst, src)
	return dst
}
