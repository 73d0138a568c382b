package idempotency

import (
	"strings"
	"testing"
)

func TestValid(t *testing.T) {
	ok := []string{"a", "3f2b8c1e-7d4a-4e2f-9b1c-0a1b2c3d4e5f", "order:42.retry_1"}
	for _, k := range ok {
		if !Valid(k) {
			t.Fatalf("expected %q to be valid", k)
		}
	}
	bad := []string{"", "has space", "semi;colon", strings.Repeat("k", MaxKeyLen+1)}
	for _, k := range bad {
		if Valid(k) {
			t.Fatalf("expected %q to be invalid", k)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("DEPOSIT", "", "ACC0001", "10.00")
	if a != Fingerprint("DEPOSIT", "", "ACC0001", "10.00") {
		t.Fatalf("fingerprint must be deterministic")
	}
	if a == Fingerprint("DEPOSIT", "", "ACC0001", "10.01") {
		t.Fatalf("different amounts must differ")
	}
	// part boundaries matter
	if Fingerprint("ab", "c") == Fingerprint("a", "bc") {
		t.Fatalf("part boundaries must be preserved")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256, got %d chars", len(a))
	}
}
