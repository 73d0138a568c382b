// Package events defines the domain events emitted after money moves and the
// Publisher contract used to ship them.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tinoosan/bank/internal/ledger"
)

// TransactionPosted is emitted once per successful deposit, withdrawal or transfer.
type TransactionPosted struct {
	EventID            uuid.UUID              `json:"event_id"`
	TransactionID      int                    `json:"transaction_id"`
	Type               ledger.TransactionType `json:"type"`
	SourceAccount      *string                `json:"source_account"`
	DestinationAccount *string                `json:"destination_account"`
	// Amount is the decimal string, e.g. "100.00".
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionPosted builds the event for t with a fresh event id.
func NewTransactionPosted(t ledger.Transaction) TransactionPosted {
	t = t.Clone()
	return TransactionPosted{
		EventID:            uuid.New(),
		TransactionID:      t.ID,
		Type:               t.Type,
		SourceAccount:      t.SourceAccount,
		DestinationAccount: t.DestinationAccount,
		Amount:             t.Amount.Decimal().String(),
		Currency:           t.Amount.Curr().Code(),
		Timestamp:          t.Timestamp,
	}
}

// Publisher ships events. Implementations must not block for long; callers
// invoke Publish outside the store lock and only log failures.
type Publisher interface {
	Publish(ctx context.Context, ev TransactionPosted) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, TransactionPosted) error { return nil }

// Recorder keeps published events in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []TransactionPosted
	// Err, when set, is returned from every Publish after recording.
	Err error
}

func (r *Recorder) Publish(_ context.Context, ev TransactionPosted) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.Err
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []TransactionPosted {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TransactionPosted(nil), r.events...)
}
