package ledger

import (
	"fmt"
	"math"
)

const masterReceiptPrefix = "RCP"

// masterReceiptNumber formats the per-student receipt identifier, e.g.
// RCP20260001. seq is the count of existing master receipts + 1 and must be
// read inside the same atomic unit that creates the receipt.
func masterReceiptNumber(year int, seq int64) string {
	return fmt.Sprintf("%s%d%04d", masterReceiptPrefix, year, seq)
}

// installmentReceiptNumber derives the per-payment sub-identifier from the
// master number and the payment sequence. No separate allocator is needed.
func installmentReceiptNumber(master string, paymentNumber int) string {
	return fmt.Sprintf("%s-%d", master, paymentNumber)
}

// roundPaise rounds a money amount to two decimal places, matching the
// numeric(12,2) columns. Aggregate arithmetic must pass through this so a
// remaining balance of e.g. 0.1 stays payable instead of drifting to
// 0.0999... and getting a settling payment rejected.
func roundPaise(v float64) float64 {
	return math.Round(v*100) / 100
}
