// Package notify delivers receipt documents to payers. Delivery is best
// effort: a payment is already committed by the time the dispatcher runs, so
// nothing here is allowed to fail the payment.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/internal/ledger"
	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

// Message is one rendered receipt email.
type Message struct {
	ToName         string
	ToEmail        string
	Subject        string
	Body           string
	Attachment     []byte
	AttachmentName string
}

// Sender delivers a single message through some email backend.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher renders and sends receipt notifications.
type Dispatcher struct {
	sender  Sender
	appName string
}

var _ ledger.Notifier = (*Dispatcher)(nil)

func NewDispatcher(sender Sender, appName string) *Dispatcher {
	return &Dispatcher{sender: sender, appName: appName}
}

// Notify emails the installment receipt to the student. A missing or invalid
// address is a Skipped result, not an error; send failures are logged and
// reported as Failed.
func (d *Dispatcher) Notify(ctx context.Context, student *models.Student, installment *models.Installment, receipt *models.FeeReceipt) ledger.DeliveryResult {
	result := ledger.DeliveryResult{ID: uuid.NewString()}

	addr := strings.TrimSpace(student.Email)
	if addr == "" {
		result.Status = ledger.DeliverySkipped
		result.Detail = "student has no contact email"
		return result
	}
	if _, err := mail.ParseAddress(addr); err != nil {
		result.Status = ledger.DeliverySkipped
		result.Detail = "student contact email is not a valid address"
		return result
	}

	pdf, err := BuildReceiptPDF(d.appName, student, installment, receipt)
	if err != nil {
		slog.Error("Failed to render receipt PDF",
			"student_id", student.ID, "receipt_number", installment.ReceiptNumber, "error", err)
		result.Status = ledger.DeliveryFailed
		result.Detail = "could not render receipt document"
		return result
	}

	msg := Message{
		ToName:         student.FullName(),
		ToEmail:        addr,
		Subject:        fmt.Sprintf("[%s] Payment receipt %s", d.appName, installment.ReceiptNumber),
		Body:           renderReceiptBody(d.appName, student, installment, receipt),
		Attachment:     pdf,
		AttachmentName: installment.ReceiptNumber + ".pdf",
	}
	if err := d.sender.Send(ctx, msg); err != nil {
		slog.Error("Failed to send receipt email",
			"student_id", student.ID, "receipt_number", installment.ReceiptNumber, "error", err)
		result.Status = ledger.DeliveryFailed
		result.Detail = err.Error()
		return result
	}

	result.Status = ledger.DeliveryDelivered
	return result
}
