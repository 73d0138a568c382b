// Package storage declares the contract between the services and the Ledger
// Store. Services never lock anything themselves: every read-modify-write
// sequence runs inside a single Update callback.
package storage

import (
	"context"

	"github.com/tinoosan/bank/internal/ledger"
)

// Reader is the read side of a lock-scoped view. Returned values are copies.
type Reader interface {
	Clients() []ledger.Client
	Client(id int) (ledger.Client, bool)
	Accounts() []ledger.Account
	Account(number string) (ledger.Account, bool)
	Transactions() []ledger.Transaction
	Transaction(id int) (ledger.Transaction, bool)
	// Idempotent resolves a previously recorded idempotency key.
	Idempotent(key string) (IdempotencyRecord, bool)
}

// Tx extends Reader with writes. Callers finish their checks before the first
// write so that a returned error leaves the store untouched.
type Tx interface {
	Reader
	// InsertClient assigns the next client id and stores c.
	InsertClient(c ledger.Client) ledger.Client
	PutClient(c ledger.Client)
	DeleteClient(id int)
	// InsertAccount assigns the next account number and stores a.
	InsertAccount(a ledger.Account) ledger.Account
	PutAccount(a ledger.Account)
	DeleteAccount(number string)
	// InsertTransaction assigns the next transaction id and stores t.
	InsertTransaction(t ledger.Transaction) ledger.Transaction
	PutTransaction(t ledger.Transaction)
	DeleteTransaction(id int)
	SaveIdempotent(key string, rec IdempotencyRecord)
}

// IdempotencyRecord remembers the request fingerprint and the transaction it produced.
type IdempotencyRecord struct {
	Fingerprint string
	Transaction ledger.Transaction
}

// Store runs callbacks under the store lock.
type Store interface {
	View(ctx context.Context, fn func(Reader) error) error
	Update(ctx context.Context, fn func(Tx) error) error
}
