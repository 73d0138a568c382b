// Package memory provides the process-memory Ledger Store. All state is
// volatile and lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/tinoosan/bank/internal/ledger"
	"github.com/tinoosan/bank/internal/storage"
)

// Store owns the client, account and transaction collections plus their
// counters. It is guarded by a single RWMutex: View takes the read lock,
// Update the write lock for the whole callback.
type Store struct {
	mu sync.RWMutex

	clients     map[int]ledger.Client
	clientOrder []int
	accounts    map[string]ledger.Account
	// accountOrder keeps insertion order; numbers stop sorting lexically past ACC9999.
	accountOrder []string
	txs          map[int]ledger.Transaction
	txOrder      []int
	idem         map[string]storage.IdempotencyRecord

	// Counters only grow, so ids and numbers are never reused after deletes.
	lastClientID   int
	lastAccountSeq int
	lastTxID       int
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		clients:  make(map[int]ledger.Client),
		accounts: make(map[string]ledger.Account),
		txs:      make(map[int]ledger.Transaction),
		idem:     make(map[string]storage.IdempotencyRecord),
	}
}

// Reset drops all data and counters.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = map[int]ledger.Client{}
	s.clientOrder = nil
	s.accounts = map[string]ledger.Account{}
	s.accountOrder = nil
	s.txs = map[int]ledger.Transaction{}
	s.txOrder = nil
	s.idem = map[string]storage.IdempotencyRecord{}
	s.lastClientID, s.lastAccountSeq, s.lastTxID = 0, 0, 0
}

// Ready always succeeds; there is nothing to connect to.
func (s *Store) Ready(_ context.Context) error { return nil }

// View implements storage.Store.
func (s *Store) View(ctx context.Context, fn func(storage.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(lockedTx{s})
}

// Update implements storage.Store.
func (s *Store) Update(ctx context.Context, fn func(storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(lockedTx{s})
}

// lockedTx is handed to callbacks while s.mu is held; its methods never lock.
type lockedTx struct{ s *Store }

func (t lockedTx) Clients() []ledger.Client {
	out := make([]ledger.Client, 0, len(t.s.clientOrder))
	for _, id := range t.s.clientOrder {
		out = append(out, t.s.clients[id])
	}
	return out
}

func (t lockedTx) Client(id int) (ledger.Client, bool) {
	c, ok := t.s.clients[id]
	return c, ok
}

func (t lockedTx) InsertClient(c ledger.Client) ledger.Client {
	t.s.lastClientID++
	c.ID = t.s.lastClientID
	t.s.clients[c.ID] = c
	t.s.clientOrder = append(t.s.clientOrder, c.ID)
	return c
}

func (t lockedTx) PutClient(c ledger.Client) {
	if _, ok := t.s.clients[c.ID]; !ok {
		return
	}
	t.s.clients[c.ID] = c
}

func (t lockedTx) DeleteClient(id int) {
	if _, ok := t.s.clients[id]; !ok {
		return
	}
	delete(t.s.clients, id)
	t.s.clientOrder = without(t.s.clientOrder, id)
}

func (t lockedTx) Accounts() []ledger.Account {
	out := make([]ledger.Account, 0, len(t.s.accountOrder))
	for _, n := range t.s.accountOrder {
		out = append(out, t.s.accounts[n])
	}
	return out
}

func (t lockedTx) Account(number string) (ledger.Account, bool) {
	a, ok := t.s.accounts[number]
	return a, ok
}

func (t lockedTx) InsertAccount(a ledger.Account) ledger.Account {
	t.s.lastAccountSeq++
	a.Number = ledger.FormatAccountNumber(t.s.lastAccountSeq)
	t.s.accounts[a.Number] = a
	t.s.accountOrder = append(t.s.accountOrder, a.Number)
	return a
}

func (t lockedTx) PutAccount(a ledger.Account) {
	if _, ok := t.s.accounts[a.Number]; !ok {
		return
	}
	t.s.accounts[a.Number] = a
}

func (t lockedTx) DeleteAccount(number string) {
	if _, ok := t.s.accounts[number]; !ok {
		return
	}
	delete(t.s.accounts, number)
	t.s.accountOrder = without(t.s.accountOrder, number)
}

func (t lockedTx) Transactions() []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(t.s.txOrder))
	for _, id := range t.s.txOrder {
		out = append(out, t.s.txs[id].Clone())
	}
	return out
}

func (t lockedTx) Transaction(id int) (ledger.Transaction, bool) {
	tx, ok := t.s.txs[id]
	return tx.Clone(), ok
}

func (t lockedTx) InsertTransaction(tx ledger.Transaction) ledger.Transaction {
	t.s.lastTxID++
	tx = tx.Clone()
	tx.ID = t.s.lastTxID
	t.s.txs[tx.ID] = tx
	t.s.txOrder = append(t.s.txOrder, tx.ID)
	return tx.Clone()
}

func (t lockedTx) PutTransaction(tx ledger.Transaction) {
	if _, ok := t.s.txs[tx.ID]; !ok {
		return
	}
	t.s.txs[tx.ID] = tx.Clone()
}

func (t lockedTx) DeleteTransaction(id int) {
	if _, ok := t.s.txs[id]; !ok {
		return
	}
	delete(t.s.txs, id)
	t.s.txOrder = without(t.s.txOrder, id)
}

func (t lockedTx) Idempotent(key string) (storage.IdempotencyRecord, bool) {
	rec, ok := t.s.idem[key]
	if !ok {
		return storage.IdempotencyRecord{}, false
	}
	rec.Transaction = rec.Transaction.Clone()
	return rec, true
}

func (t lockedTx) SaveIdempotent(key string, rec storage.IdempotencyRecord) {
	// first writer wins
	if _, exists := t.s.idem[key]; exists {
		return
	}
	rec.Transaction = rec.Transaction.Clone()
	t.s.idem[key] = rec
}

// without removes the first occurrence of k, preserving order.
func without[K comparable](keys []K, k K) []K {
	for i := range keys {
		if keys[i] == k {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}
