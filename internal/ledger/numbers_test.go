package ledger

import "testing"

func TestMasterReceiptNumber(t *testing.T) {
	cases := []struct {
		year int
		seq  int64
		want string
	}{
		{2026, 1, "RCP20260001"},
		{2026, 42, "RCP20260042"},
		{2027, 9999, "RCP20279999"},
		{2027, 10000, "RCP202710000"},
	}
	for _, tc := range cases {
		if got := masterReceiptNumber(tc.year, tc.seq); got != tc.want {
			t.Errorf("masterReceiptNumber(%d, %d) = %q, want %q", tc.year, tc.seq, got, tc.want)
		}
	}
}

func TestInstallmentReceiptNumber(t *testing.T) {
	if got := installmentReceiptNumber("RCP20260001", 1); got != "RCP20260001-1" {
		t.Errorf("got %q, want RCP20260001-1", got)
	}
	if got := installmentReceiptNumber("RCP20260001", 12); got != "RCP20260001-12" {
		t.Errorf("got %q, want RCP20260001-12", got)
	}
}

func TestFeeStatusFor(t *testing.T) {
	if got := feeStatusFor(0); got != "Paid" {
		t.Errorf("feeStatusFor(0) = %q, want Paid", got)
	}
	if got := feeStatusFor(1500); got != "PartiallyPaid" {
		t.Errorf("feeStatusFor(1500) = %q, want PartiallyPaid", got)
	}
}
