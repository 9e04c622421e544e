package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

// maxTxAttempts bounds retries of the atomic unit on write conflicts.
const maxTxAttempts = 3

// RecordPaymentInput is a request to record one fee installment.
type RecordPaymentInput struct {
	StudentID     uint
	Amount        float64
	PaymentMode   string
	TransactionID string
	Remarks       string

	// TotalFee overrides the fee-structure catalog on the student's first
	// payment. Ignored once a receipt exists.
	TotalFee float64
}

// PaymentResult is returned to the caller after a committed payment.
type PaymentResult struct {
	Installment     models.Installment   `json:"installment"`
	Receipt         models.FeeReceipt    `json:"receipt"`
	Installments    []models.Installment `json:"installments"`
	RemainingAmount float64              `json:"remainingAmount"`
	Notification    DeliveryResult       `json:"notification"`
}

// Ledger is the read-only view of a student's payment history.
type Ledger struct {
	Installments []models.Installment `json:"installments"`
	Receipt      *models.FeeReceipt   `json:"receipt"`
	TotalPaid    float64              `json:"totalPaid"`
}

// Service orchestrates fee payments: validation, fee resolution, the atomic
// append+aggregate unit, and the post-commit receipt notification.
type Service struct {
	store    Store
	notifier Notifier
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// RecordPayment is the single mutating entry point of the ledger.
//
// The installment and the receipt update are committed together or not at
// all. On a write conflict the whole unit is retried up to maxTxAttempts
// times. The notification runs only after the unit is durable; its failure
// degrades the result but never the payment.
func (s *Service) RecordPayment(ctx context.Context, in RecordPaymentInput) (*PaymentResult, error) {
	in.Amount = roundPaise(in.Amount)
	in.TotalFee = roundPaise(in.TotalFee)
	if in.Amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if strings.TrimSpace(in.PaymentMode) == "" {
		return nil, &ValidationError{Field: "paymentMode", Reason: "is required"}
	}
	if in.TotalFee < 0 {
		return nil, &ValidationError{Field: "totalFee", Reason: "must not be negative"}
	}

	student, err := s.store.GetStudent(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}

	var res *PaymentResult
	for attempt := 1; ; attempt++ {
		res = &PaymentResult{}
		err = s.store.InStudentTx(ctx, student.ID, func(tx Tx) error {
			return s.applyPayment(tx, student, in, res)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, ErrConflict) {
			return nil, err
		}
		if attempt >= maxTxAttempts {
			return nil, fmt.Errorf("payment not committed after %d attempts: %w", maxTxAttempts, err)
		}
		slog.Warn("Payment transaction conflict, retrying",
			"student_id", student.ID, "attempt", attempt)
	}

	// The payment is durable from here on; notification is best effort.
	res.Notification = s.notifier.Notify(ctx, student, &res.Installment, &res.Receipt)
	if res.Notification.Status == DeliveryFailed {
		slog.Error("Receipt notification failed",
			"student_id", student.ID,
			"receipt_number", res.Installment.ReceiptNumber,
			"detail", res.Notification.Detail)
	}

	slog.Info("Payment recorded",
		"student_id", student.ID,
		"receipt_number", res.Installment.ReceiptNumber,
		"amount", in.Amount,
		"remaining", res.RemainingAmount)
	return res, nil
}

// applyPayment runs inside one atomic unit. Everything it writes through tx
// is committed or rolled back as a whole.
func (s *Service) applyPayment(tx Tx, student *models.Student, in RecordPaymentInput, res *PaymentResult) error {
	count, err := tx.CountInstallments(student.ID)
	if err != nil {
		return err
	}

	receipt, err := tx.GetReceiptForUpdate(student.ID)
	if err != nil && !errors.Is(err, ErrReceiptNotFound) {
		return err
	}

	now := time.Now()
	if receipt == nil {
		if count > 0 {
			return fmt.Errorf("ledger inconsistency: student %d has %d installments but no receipt", student.ID, count)
		}

		totalFee := in.TotalFee
		if totalFee == 0 {
			fs, err := tx.GetFeeStructure(student.Course)
			if err != nil {
				return err
			}
			totalFee = roundPaise(fs.TotalFee)
		}
		if in.Amount > totalFee {
			return ErrOverpayment
		}

		seq, err := tx.CountReceipts()
		if err != nil {
			return err
		}
		receipt = &models.FeeReceipt{
			StudentID:       student.ID,
			ReceiptNumber:   masterReceiptNumber(now.Year(), seq+1),
			TotalFee:        totalFee,
			RemainingAmount: totalFee,
			FeeStatus:       models.FeeStatusPending,
		}
		if err := tx.CreateReceipt(receipt); err != nil {
			return err
		}
	} else if in.Amount > receipt.RemainingAmount {
		return ErrOverpayment
	}

	paymentNumber := int(count) + 1
	inst := models.Installment{
		StudentID:     student.ID,
		PaymentNumber: paymentNumber,
		Amount:        in.Amount,
		PaymentMode:   in.PaymentMode,
		TransactionID: in.TransactionID,
		Remarks:       in.Remarks,
		ReceiptNumber: installmentReceiptNumber(receipt.ReceiptNumber, paymentNumber),
		PaymentDate:   now,
	}
	if err := tx.CreateInstallment(&inst); err != nil {
		return err
	}

	// Rounded to paise so the derived status and the response agree with the
	// numeric(12,2) values the database stores.
	receipt.TotalAmount = roundPaise(receipt.TotalAmount + in.Amount)
	receipt.RemainingAmount = roundPaise(receipt.RemainingAmount - in.Amount)
	receipt.FeeStatus = feeStatusFor(receipt.RemainingAmount)
	receipt.LastPaymentDate = &now
	receipt.LastPaymentMode = in.PaymentMode
	if err := tx.SaveReceipt(receipt); err != nil {
		return err
	}

	history, err := tx.ListInstallments(student.ID)
	if err != nil {
		return err
	}

	res.Installment = inst
	res.Receipt = *receipt
	res.Installments = history
	res.RemainingAmount = receipt.RemainingAmount
	return nil
}

// feeStatusFor derives the receipt status from the remaining balance. A
// receipt always has at least one installment, so Pending never results.
func feeStatusFor(remaining float64) string {
	if remaining <= 0 {
		return models.FeeStatusPaid
	}
	return models.FeeStatusPartiallyPaid
}

// GetLedger returns the student's full payment history. Receipt is nil when
// no payment has been recorded yet.
func (s *Service) GetLedger(ctx context.Context, studentID uint) (*Ledger, error) {
	if _, err := s.store.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}

	installments, err := s.store.ListInstallments(ctx, studentID)
	if err != nil {
		return nil, err
	}

	ledger := &Ledger{Installments: installments}
	receipt, err := s.store.GetReceiptByStudent(ctx, studentID)
	switch {
	case err == nil:
		ledger.Receipt = receipt
		ledger.TotalPaid = receipt.TotalAmount
	case errors.Is(err, ErrReceiptNotFound):
		// No payments yet.
	default:
		return nil, err
	}
	return ledger, nil
}

// GetReceiptByStudent returns the student's receipt aggregate.
func (s *Service) GetReceiptByStudent(ctx context.Context, studentID uint) (*models.FeeReceipt, error) {
	if _, err := s.store.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.store.GetReceiptByStudent(ctx, studentID)
}

// GetReceiptByNumber looks a receipt up by its master receipt number.
func (s *Service) GetReceiptByNumber(ctx context.Context, number string) (*models.FeeReceipt, error) {
	return s.store.GetReceiptByNumber(ctx, number)
}
