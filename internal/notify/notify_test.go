package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/ledger"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

type captureSender struct {
	sent []Message
	err  error
}

func (s *captureSender) Send(_ context.Context, msg Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func fixtures() (*models.Student, *models.Installment, *models.FeeReceipt) {
	student := &models.Student{FirstName: "Asha", LastName: "Verma", Course: "JEE", Email: "asha@example.com"}
	student.ID = 1
	installment := &models.Installment{
		StudentID:     1,
		PaymentNumber: 1,
		Amount:        2000,
		PaymentMode:   "Cash",
		ReceiptNumber: "RCP20260001-1",
		PaymentDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	receipt := &models.FeeReceipt{
		StudentID:       1,
		ReceiptNumber:   "RCP20260001",
		TotalFee:        8000,
		TotalAmount:     2000,
		RemainingAmount: 6000,
		FeeStatus:       models.FeeStatusPartiallyPaid,
	}
	return student, installment, receipt
}

func TestNotifyDelivers(t *testing.T) {
	sender := &captureSender{}
	d := NewDispatcher(sender, "Test Academy")
	student, installment, receipt := fixtures()

	result := d.Notify(context.Background(), student, installment, receipt)
	if result.Status != ledger.DeliveryDelivered {
		t.Fatalf("status = %q, want Delivered", result.Status)
	}
	if result.ID == "" {
		t.Error("delivery result has no id")
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}

	msg := sender.sent[0]
	if msg.ToEmail != "asha@example.com" {
		t.Errorf("recipient = %q", msg.ToEmail)
	}
	if !strings.Contains(msg.Subject, "RCP20260001-1") {
		t.Errorf("subject %q does not name the receipt", msg.Subject)
	}
	if !strings.Contains(msg.Body, "2000.00") || !strings.Contains(msg.Body, "6000.00") {
		t.Errorf("body is missing amounts:\n%s", msg.Body)
	}
	if len(msg.Attachment) == 0 || msg.AttachmentName != "RCP20260001-1.pdf" {
		t.Errorf("attachment missing or misnamed: %q, %d bytes", msg.AttachmentName, len(msg.Attachment))
	}
}

func TestNotifySkipsWithoutEmail(t *testing.T) {
	sender := &captureSender{}
	d := NewDispatcher(sender, "Test Academy")
	student, installment, receipt := fixtures()

	t.Run("empty address", func(t *testing.T) {
		student.Email = "  "
		result := d.Notify(context.Background(), student, installment, receipt)
		if result.Status != ledger.DeliverySkipped {
			t.Errorf("status = %q, want Skipped", result.Status)
		}
	})

	t.Run("invalid address", func(t *testing.T) {
		student.Email = "not-an-address"
		result := d.Notify(context.Background(), student, installment, receipt)
		if result.Status != ledger.DeliverySkipped {
			t.Errorf("status = %q, want Skipped", result.Status)
		}
	})

	if len(sender.sent) != 0 {
		t.Errorf("skipped notifications must not send, got %d", len(sender.sent))
	}
}

func TestNotifyReportsSendFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("smtp down")}
	d := NewDispatcher(sender, "Test Academy")
	student, installment, receipt := fixtures()

	result := d.Notify(context.Background(), student, installment, receipt)
	if result.Status != ledger.DeliveryFailed {
		t.Fatalf("status = %q, want Failed", result.Status)
	}
	if !strings.Contains(result.Detail, "smtp down") {
		t.Errorf("detail = %q", result.Detail)
	}
}
