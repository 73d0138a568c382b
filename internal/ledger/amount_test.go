package ledger

import (
	"encoding/json"
	"math"
	"testing"
)

func TestAmountConversions(t *testing.T) {
	cases := []struct {
		in    json.Number
		minor int64
	}{
		{"100", 10000},
		{"100.5", 10050},
		{"0.01", 1},
		{"1e2", 10000},
	}
	for _, c := range cases {
		a, err := AmountFromNumber("USD", c.in)
		if err != nil {
			t.Fatalf("%s: %v", c.in, err)
		}
		if a.Curr().Code() != "USD" {
			t.Fatalf("%s: unexpected currency %s", c.in, a.Curr().Code())
		}
		if got := AmountToFloat(a); got != float64(c.minor)/100 {
			t.Fatalf("%s: expected %v, got %v", c.in, float64(c.minor)/100, got)
		}
	}
	if _, err := AmountFromNumber("USD", "abc"); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := AmountFromFloat("USD", math.NaN()); err == nil {
		t.Fatalf("expected NaN to be rejected")
	}
	z, err := ZeroAmount("USD")
	if err != nil || !z.IsZero() {
		t.Fatalf("zero amount: %v %v", z, err)
	}
}

func TestParseAccountType(t *testing.T) {
	if typ, ok := ParseAccountType(" savings "); !ok || typ != AccountTypeSavings {
		t.Fatalf("expected SAVINGS, got %q %v", typ, ok)
	}
	if _, ok := ParseAccountType("gold"); ok {
		t.Fatalf("expected unknown type")
	}
	if FormatAccountNumber(7) != "ACC0007" || FormatAccountNumber(12345) != "ACC12345" {
		t.Fatalf("unexpected account number format")
	}
}
