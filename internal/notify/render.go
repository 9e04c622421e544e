package notify

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/divan/num2words"
	"github.com/jung-kurt/gofpdf"

	"github.com/Pratik-Patil-s-Academy/Student-Management-Portal-sub001/models"
)

// amountInWords spells an amount out for the receipt document, e.g.
// "two thousand rupees" or "ninety-nine rupees 50 paise".
func amountInWords(amount float64) string {
	rupees := int(amount)
	paise := int(math.Round((amount - float64(rupees)) * 100))
	words := fmt.Sprintf("%s rupees", num2words.Convert(rupees))
	if paise > 0 {
		words = fmt.Sprintf("%s %d paise", words, paise)
	}
	return words
}

func renderReceiptBody(appName string, student *models.Student, installment *models.Installment, receipt *models.FeeReceipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", student.FullName())
	fmt.Fprintf(&b, "We have received your payment of %.2f (%s).\n\n", installment.Amount, amountInWords(installment.Amount))
	fmt.Fprintf(&b, "Receipt number: %s\n", installment.ReceiptNumber)
	fmt.Fprintf(&b, "Payment mode: %s\n", installment.PaymentMode)
	fmt.Fprintf(&b, "Payment date: %s\n\n", installment.PaymentDate.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "Total paid so far: %.2f\n", receipt.TotalAmount)
	fmt.Fprintf(&b, "Remaining balance: %.2f\n", receipt.RemainingAmount)
	fmt.Fprintf(&b, "Fee status: %s\n\n", receipt.FeeStatus)
	fmt.Fprintf(&b, "The detailed receipt is attached.\n\nRegards,\n%s\n", appName)
	return b.String()
}

// BuildReceiptPDF renders the installment receipt as a PDF document.
func BuildReceiptPDF(appName string, student *models.Student, installment *models.Installment, receipt *models.FeeReceipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 10, appName)
	pdf.Ln(12)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Fee Receipt %s", installment.ReceiptNumber))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Student: %s", student.FullName()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Course: %s", student.Course))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Payment date: %s", installment.PaymentDate.Format("02 Jan 2006")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Payment mode: %s", installment.PaymentMode))
	pdf.Ln(5)
	if installment.TransactionID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Transaction ID: %s", installment.TransactionID))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 6, "Installment", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(60, 6, fmt.Sprintf("#%d", installment.PaymentNumber), "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 6, fmt.Sprintf("%.2f", installment.Amount), "1", 0, "R", false, 0, "")
	pdf.Ln(10)

	pdf.Cell(0, 6, fmt.Sprintf("Amount in words: %s", amountInWords(installment.Amount)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total fee: %.2f", receipt.TotalFee))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total paid: %.2f", receipt.TotalAmount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Remaining: %.2f", receipt.RemainingAmount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", receipt.FeeStatus))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
