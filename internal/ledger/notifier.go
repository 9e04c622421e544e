package ledger

import (
	"context"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "Delivered"
	DeliverySkipped   DeliveryStatus = "Skipped"
	DeliveryFailed    DeliveryStatus = "Failed"
)

// DeliveryResult describes the outcome of one receipt notification attempt.
type DeliveryResult struct {
	ID     string         `json:"id"`
	Status DeliveryStatus `json:"status"`
	Detail string         `json:"detail,omitempty"`
}

// Notifier delivers a receipt document to the payer after a payment has been
// committed. Implementations never return an error: delivery problems are
// reported through the result and must not affect the ledger.
type Notifier interface {
	Notify(ctx context.Context, student *models.Student, installment *models.Installment, receipt *models.FeeReceipt) DeliveryResult
}
