package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	FeeStatusPending       = "Pending"
	FeeStatusPartiallyPaid = "PartiallyPaid"
	FeeStatusPaid          = "Paid"
)

// FeeReceipt is the single mutable summary per student, derived from the
// installment ledger. TotalAmount must always equal the sum of the student's
// installment amounts; the payment transaction maintains that invariant.
type FeeReceipt struct {
	gorm.Model
	StudentID       uint       `json:"studentId" gorm:"uniqueIndex:idx_fee_receipts_student_id;not null"`
	ReceiptNumber   string     `json:"receiptNumber" gorm:"uniqueIndex:idx_fee_receipts_receipt_number;not null"`
	TotalFee        float64    `json:"totalFee" gorm:"type:numeric(12,2);not null"`
	TotalAmount     float64    `json:"totalAmount" gorm:"type:numeric(12,2);not null"`
	RemainingAmount float64    `json:"remainingAmount" gorm:"type:numeric(12,2);not null"`
	FeeStatus       string     `json:"feeStatus" gorm:"not null;default:'Pending'"`
	LastPaymentDate *time.Time `json:"lastPaymentDate"`
	LastPaymentMode string     `json:"lastPaymentMode"`

	Student      *Student      `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Installments []Installment `json:"installments,omitempty" gorm:"foreignKey:StudentID;references:StudentID"`
}
