package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/ledger"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

func TestGetStudentNotFound(t *testing.T) {
	store := New()
	if _, err := store.GetStudent(context.Background(), 7); !errors.Is(err, ledger.ErrStudentNotFound) {
		t.Fatalf("error = %v, want ErrStudentNotFound", err)
	}
}

func TestInStudentTxRollsBackOnError(t *testing.T) {
	store := New()
	student := models.Student{FirstName: "A", LastName: "B", Course: "JEE"}
	store.AddStudent(&student)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.InStudentTx(ctx, student.ID, func(tx ledger.Tx) error {
		receipt := &models.FeeReceipt{StudentID: student.ID, ReceiptNumber: "RCP20260001", TotalFee: 100, RemainingAmount: 100}
		if err := tx.CreateReceipt(receipt); err != nil {
			return err
		}
		if err := tx.CreateInstallment(&models.Installment{
			StudentID: student.ID, PaymentNumber: 1, Amount: 100, PaymentMode: "Cash", ReceiptNumber: "RCP20260001-1",
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}

	if _, err := store.GetReceiptByStudent(ctx, student.ID); !errors.Is(err, ledger.ErrReceiptNotFound) {
		t.Errorf("receipt leaked from a failed unit: %v", err)
	}
	installments, _ := store.ListInstallments(ctx, student.ID)
	if len(installments) != 0 {
		t.Errorf("installments leaked from a failed unit: %d", len(installments))
	}

	// The identifier is free again for the next unit.
	err = store.InStudentTx(ctx, student.ID, func(tx ledger.Tx) error {
		return tx.CreateReceipt(&models.FeeReceipt{StudentID: student.ID, ReceiptNumber: "RCP20260001", TotalFee: 100, RemainingAmount: 100})
	})
	if err != nil {
		t.Fatalf("identifier was not released on rollback: %v", err)
	}
}

func TestDuplicateMasterReceiptNumberConflicts(t *testing.T) {
	store := New()
	first := models.Student{FirstName: "A", LastName: "B", Course: "JEE"}
	second := models.Student{FirstName: "C", LastName: "D", Course: "JEE"}
	store.AddStudent(&first)
	store.AddStudent(&second)
	ctx := context.Background()

	err := store.InStudentTx(ctx, first.ID, func(tx ledger.Tx) error {
		return tx.CreateReceipt(&models.FeeReceipt{StudentID: first.ID, ReceiptNumber: "RCP20260001", TotalFee: 100, RemainingAmount: 100})
	})
	if err != nil {
		t.Fatalf("first unit failed: %v", err)
	}

	err = store.InStudentTx(ctx, second.ID, func(tx ledger.Tx) error {
		return tx.CreateReceipt(&models.FeeReceipt{StudentID: second.ID, ReceiptNumber: "RCP20260001", TotalFee: 100, RemainingAmount: 100})
	})
	if !errors.Is(err, ledger.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
}

func TestDuplicateInstallmentNumberCollides(t *testing.T) {
	store := New()
	student := models.Student{FirstName: "A", LastName: "B", Course: "JEE"}
	store.AddStudent(&student)
	ctx := context.Background()

	write := func(tx ledger.Tx) error {
		return tx.CreateInstallment(&models.Installment{
			StudentID: student.ID, PaymentNumber: 1, Amount: 50, PaymentMode: "Cash", ReceiptNumber: "RCP20260001-1",
		})
	}
	if err := store.InStudentTx(ctx, student.ID, write); err != nil {
		t.Fatalf("first unit failed: %v", err)
	}
	if err := store.InStudentTx(ctx, student.ID, write); !errors.Is(err, ledger.ErrIdentifierCollision) {
		t.Fatalf("error = %v, want ErrIdentifierCollision", err)
	}
}

func TestTxSeesOwnWrites(t *testing.T) {
	store := New()
	student := models.Student{FirstName: "A", LastName: "B", Course: "JEE"}
	store.AddStudent(&student)

	err := store.InStudentTx(context.Background(), student.ID, func(tx ledger.Tx) error {
		if err := tx.CreateInstallment(&models.Installment{
			StudentID: student.ID, PaymentNumber: 1, Amount: 50, PaymentMode: "Cash", ReceiptNumber: "RCP20260001-1",
		}); err != nil {
			return err
		}

		count, err := tx.CountInstallments(student.ID)
		if err != nil {
			return err
		}
		if count != 1 {
			t.Errorf("count inside unit = %d, want 1", count)
		}

		installments, err := tx.ListInstallments(student.ID)
		if err != nil {
			return err
		}
		if len(installments) != 1 {
			t.Errorf("list inside unit = %d rows, want 1", len(installments))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unit failed: %v", err)
	}
}
