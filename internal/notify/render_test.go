package notify

import (
	"bytes"
	"strings"
	"testing"
)

func TestAmountInWords(t *testing.T) {
	whole := amountInWords(2000)
	if !strings.HasSuffix(whole, "rupees") {
		t.Errorf("amountInWords(2000) = %q, want a rupees suffix", whole)
	}

	fractional := amountInWords(99.50)
	if !strings.Contains(fractional, "rupees") || !strings.HasSuffix(fractional, "50 paise") {
		t.Errorf("amountInWords(99.50) = %q", fractional)
	}
}

func TestBuildReceiptPDF(t *testing.T) {
	student, installment, receipt := fixtures()

	pdf, err := BuildReceiptPDF("Test Academy", student, installment, receipt)
	if err != nil {
		t.Fatalf("BuildReceiptPDF failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF (%d bytes)", len(pdf))
	}
}
