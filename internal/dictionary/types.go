// Package dictionary publishes the closed vocabularies of the API so clients
// can render pickers without hard-coding them.
package dictionary

import "github.com/tinoosan/bank/internal/ledger"

type TypeDef struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	// Debits and Credits describe which balance direction the type moves, for transactions.
	Debits  bool `json:"debits,omitempty"`
	Credits bool `json:"credits,omitempty"`
}

var accountTypes = map[ledger.AccountType]TypeDef{
	ledger.AccountTypeSavings:  {Code: string(ledger.AccountTypeSavings), Label: "Savings"},
	ledger.AccountTypeChecking: {Code: string(ledger.AccountTypeChecking), Label: "Checking"},
	ledger.AccountTypeCredit:   {Code: string(ledger.AccountTypeCredit), Label: "Credit"},
}

var transactionTypes = map[ledger.TransactionType]TypeDef{
	ledger.TransactionTypeDeposit:    {Code: string(ledger.TransactionTypeDeposit), Label: "Deposit", Credits: true},
	ledger.TransactionTypeWithdrawal: {Code: string(ledger.TransactionTypeWithdrawal), Label: "Withdrawal", Debits: true},
	ledger.TransactionTypeTransfer:   {Code: string(ledger.TransactionTypeTransfer), Label: "Transfer", Debits: true, Credits: true},
}

// AccountTypes returns the account type definitions in display order.
func AccountTypes() []TypeDef {
	out := make([]TypeDef, 0, len(ledger.AccountTypes))
	for _, t := range ledger.AccountTypes {
		out = append(out, accountTypes[t])
	}
	return out
}

// TransactionTypes returns the transaction type definitions in display order.
func TransactionTypes() []TypeDef {
	out := make([]TypeDef, 0, len(ledger.TransactionTypes))
	for _, t := range ledger.TransactionTypes {
		out = append(out, transactionTypes[t])
	}
	return out
}
