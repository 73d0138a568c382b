// Package ledger holds the banking entities shared by the store, the services
// and the HTTP layer.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/govalues/money"
)

// AccountType enumerates the kinds of account a client may open.
type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
	AccountTypeCredit   AccountType = "CREDIT"
)

// AccountTypes lists every valid AccountType in display order.
var AccountTypes = []AccountType{AccountTypeSavings, AccountTypeChecking, AccountTypeCredit}

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeChecking, AccountTypeCredit:
		return true
	}
	return false
}

// ParseAccountType normalizes s (trim + upper case) and checks it against the known types.
func ParseAccountType(s string) (AccountType, bool) {
	t := AccountType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// TransactionType identifies the money movement that produced a transaction.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
)

// TransactionTypes lists every TransactionType in display order.
var TransactionTypes = []TransactionType{TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer}

// Client is a bank customer.
type Client struct {
	ID    int
	Name  string
	Email string
}

// Account is a client's account. Balance is never negative.
type Account struct {
	// Number is system generated (ACC0001, ACC0002, ...) and never reused.
	Number   string
	ClientID int
	Type     AccountType
	Balance  money.Amount
}

// Transaction records one money movement. Only Note may change after creation.
type Transaction struct {
	ID   int
	Type TransactionType
	// SourceAccount is set for withdrawals and transfers.
	SourceAccount *string
	// DestinationAccount is set for deposits and transfers.
	DestinationAccount *string
	Amount             money.Amount
	Timestamp          time.Time
	Note               *string
}

// Touches reports whether the transaction moved money in or out of the account.
func (t Transaction) Touches(number string) bool {
	if t.SourceAccount != nil && *t.SourceAccount == number {
		return true
	}
	return t.DestinationAccount != nil && *t.DestinationAccount == number
}

// Clone returns a copy that shares no pointers with t.
func (t Transaction) Clone() Transaction {
	out := t
	out.SourceAccount = cloneStr(t.SourceAccount)
	out.DestinationAccount = cloneStr(t.DestinationAccount)
	out.Note = cloneStr(t.Note)
	return out
}

// FormatAccountNumber renders the n-th account number.
func FormatAccountNumber(n int) string { return fmt.Sprintf("ACC%04d", n) }

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
