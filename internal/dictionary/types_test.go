package dictionary

import "testing"

func TestDictionaryCoversEveryType(t *testing.T) {
	acc := AccountTypes()
	if len(acc) != 3 || acc[0].Code != "SAVINGS" || acc[2].Label != "Credit" {
		t.Fatalf("unexpected account types: %+v", acc)
	}
	tx := TransactionTypes()
	if len(tx) != 3 || !tx[0].Credits || !tx[1].Debits || !(tx[2].Debits && tx[2].Credits) {
		t.Fatalf("unexpected transaction types: %+v", tx)
	}
}
