package models

import (
	"time"

	"gorm.io/gorm"
)

// Installment is one recorded payment event for a student. Rows are append
// only: created once inside the payment transaction, never updated.
type Installment struct {
	gorm.Model
	StudentID     uint      `json:"studentId" gorm:"not null;uniqueIndex:idx_installments_student_payment"`
	PaymentNumber int       `json:"paymentNumber" gorm:"not null;uniqueIndex:idx_installments_student_payment"`
	Amount        float64   `json:"amount" gorm:"type:numeric(12,2);not null"`
	PaymentMode   string    `json:"paymentMode" gorm:"not null"`
	TransactionID string    `json:"transactionId"`
	Remarks       string    `json:"remarks"`
	ReceiptNumber string    `json:"receiptNumber" gorm:"uniqueIndex:idx_installments_receipt_number;not null"`
	PaymentDate   time.Time `json:"paymentDate" gorm:"not null"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}
