// Package transaction owns the transaction history and the money movements
// that append to it. Every movement checks and applies its effects inside one
// store write lock, so observers never see a partial transfer.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/govalues/money"
	"github.com/tinoosan/bank/internal/errs"
	"github.com/tinoosan/bank/internal/events"
	"github.com/tinoosan/bank/internal/idempotency"
	"github.com/tinoosan/bank/internal/ledger"
	"github.com/tinoosan/bank/internal/storage"
)

// MaxNoteLen is the longest note, in characters, a transaction may carry.
const MaxNoteLen = 200

// Filter narrows List. From and To compare against the UTC calendar date of
// the timestamp and are inclusive; only their date part is used.
type Filter struct {
	Account *string
	From    *time.Time
	To      *time.Time
}

func (f Filter) match(t ledger.Transaction) bool {
	if f.Account != nil && !t.Touches(*f.Account) {
		return false
	}
	day := dateOf(t.Timestamp)
	if f.From != nil && day.Before(dateOf(*f.From)) {
		return false
	}
	if f.To != nil && day.After(dateOf(*f.To)) {
		return false
	}
	return true
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Posted is the outcome of a money movement. Replayed is true when an
// idempotency key matched an earlier request and nothing moved this time.
type Posted struct {
	ledger.Transaction
	Replayed bool
}

type Service interface {
	List(ctx context.Context, f Filter) ([]ledger.Transaction, error)
	Get(ctx context.Context, id int) (ledger.Transaction, error)
	UpdateNote(ctx context.Context, id int, note string) (ledger.Transaction, error)
	Delete(ctx context.Context, id int) error

	Deposit(ctx context.Context, account string, amount money.Amount, opts ...MoveOption) (Posted, error)
	Withdraw(ctx context.Context, account string, amount money.Amount, opts ...MoveOption) (Posted, error)
	Transfer(ctx context.Context, origin, destination string, amount money.Amount, opts ...MoveOption) (Posted, error)
}

// Option configures the service.
type Option func(*service)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option { return func(s *service) { s.now = now } }

// WithPublisher sets where TransactionPosted events go. The default drops them.
func WithPublisher(p events.Publisher) Option { return func(s *service) { s.pub = p } }

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option { return func(s *service) { s.logger = l } }

// MoveOption configures a single movement.
type MoveOption func(*moveConfig)

type moveConfig struct{ key string }

// IdempotencyKey makes a movement replay-safe: a repeated key returns the
// transaction created the first time instead of moving money again. The
// replay reflects the current record (including its note); if the record was
// deleted, the snapshot taken at creation is returned.
func IdempotencyKey(key string) MoveOption { return func(c *moveConfig) { c.key = key } }

type service struct {
	store    storage.Store
	currency string
	now      func() time.Time
	pub      events.Publisher
	logger   *slog.Logger
}

// New returns a transaction Service. All amounts must be in currency.
func New(store storage.Store, currency string, opts ...Option) Service {
	if currency == "" {
		currency = ledger.DefaultCurrency
	}
	s := &service{
		store:    store,
		currency: currency,
		now:      time.Now,
		pub:      events.Nop{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) List(ctx context.Context, f Filter) ([]ledger.Transaction, error) {
	out := []ledger.Transaction{}
	err := s.store.View(ctx, func(r storage.Reader) error {
		for _, t := range r.Transactions() {
			if f.match(t) {
				out = append(out, t)
			}
		}
		return nil
	})
	return out, err
}

func (s *service) Get(ctx context.Context, id int) (ledger.Transaction, error) {
	var out ledger.Transaction
	err := s.store.View(ctx, func(r storage.Reader) error {
		t, ok := r.Transaction(id)
		if !ok {
			return errs.ErrNotFound
		}
		out = t
		return nil
	})
	return out, err
}

// UpdateNote replaces the note, the only mutable field of a transaction.
func (s *service) UpdateNote(ctx context.Context, id int, note string) (ledger.Transaction, error) {
	if n := utf8.RuneCountInString(note); n < 1 || n > MaxNoteLen {
		return ledger.Transaction{}, fmt.Errorf("note must be 1-%d characters: %w", MaxNoteLen, errs.ErrValidation)
	}
	var out ledger.Transaction
	err := s.store.Update(ctx, func(tx storage.Tx) error {
		t, ok := tx.Transaction(id)
		if !ok {
			return errs.ErrNotFound
		}
		t.Note = &note
		tx.PutTransaction(t)
		out = t
		return nil
	})
	if err != nil {
		return ledger.Transaction{}, err
	}
	return out, nil
}

// Delete removes the record only; balances are not touched.
func (s *service) Delete(ctx context.Context, id int) error {
	err := s.store.Update(ctx, func(tx storage.Tx) error {
		if _, ok := tx.Transaction(id); !ok {
			return errs.ErrNotFound
		}
		tx.DeleteTransaction(id)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "transaction deleted", "transaction_id", id)
	return nil
}

func (s *service) Deposit(ctx context.Context, account string, amount money.Amount, opts ...MoveOption) (Posted, error) {
	return s.move(ctx, ledger.TransactionTypeDeposit, "", account, amount, opts, func(tx storage.Tx) error {
		dst, ok := tx.Account(account)
		if !ok {
			return fmt.Errorf("account %s: %w", account, errs.ErrAccountNotFound)
		}
		next, err := credit(dst.Balance, amount)
		if err != nil {
			return err
		}
		dst.Balance = next
		tx.PutAccount(dst)
		return nil
	})
}

func (s *service) Withdraw(ctx context.Context, account string, amount money.Amount, opts ...MoveOption) (Posted, error) {
	return s.move(ctx, ledger.TransactionTypeWithdrawal, account, "", amount, opts, func(tx storage.Tx) error {
		src, ok := tx.Account(account)
		if !ok {
			return fmt.Errorf("account %s: %w", account, errs.ErrAccountNotFound)
		}
		next, err := debit(src.Balance, amount)
		if err != nil {
			return err
		}
		src.Balance = next
		tx.PutAccount(src)
		return nil
	})
}

// Transfer checks, in order: amount, both accounts exist, distinct accounts, funds.
func (s *service) Transfer(ctx context.Context, origin, destination string, amount money.Amount, opts ...MoveOption) (Posted, error) {
	return s.move(ctx, ledger.TransactionTypeTransfer, origin, destination, amount, opts, func(tx storage.Tx) error {
		src, ok := tx.Account(origin)
		if !ok {
			return fmt.Errorf("origin account %s: %w", origin, errs.ErrAccountNotFound)
		}
		dst, ok := tx.Account(destination)
		if !ok {
			return fmt.Errorf("destination account %s: %w", destination, errs.ErrAccountNotFound)
		}
		if origin == destination {
			return errs.ErrSameAccount
		}
		nextSrc, err := debit(src.Balance, amount)
		if err != nil {
			return err
		}
		nextDst, err := credit(dst.Balance, amount)
		if err != nil {
			return err
		}
		src.Balance, dst.Balance = nextSrc, nextDst
		tx.PutAccount(src)
		tx.PutAccount(dst)
		return nil
	})
}

// move runs the shared movement pipeline: validate the amount, resolve an
// idempotent replay, apply the balance changes and append the record under
// one write lock, then publish outside the lock.
func (s *service) move(ctx context.Context, typ ledger.TransactionType, src, dst string, amount money.Amount, opts []MoveOption, apply func(storage.Tx) error) (Posted, error) {
	var cfg moveConfig
	for _, o := range opts {
		o(&cfg)
	}
	if err := s.validateAmount(amount); err != nil {
		rejections.WithLabelValues(string(typ), reason(err)).Inc()
		return Posted{}, err
	}
	fingerprint := idempotency.Fingerprint(string(typ), src, dst, amount.Decimal().Trim(0).String())

	var out Posted
	err := s.store.Update(ctx, func(tx storage.Tx) error {
		if cfg.key != "" {
			if rec, ok := tx.Idempotent(cfg.key); ok {
				if rec.Fingerprint != fingerprint {
					return fmt.Errorf("key %q: %w", cfg.key, errs.ErrIdempotencyConflict)
				}
				// serve the live record so later note edits show; fall back to
				// the creation snapshot once the record is deleted
				t := rec.Transaction
				if live, ok := tx.Transaction(t.ID); ok {
					t = live
				}
				out = Posted{Transaction: t, Replayed: true}
				return nil
			}
		}
		if err := apply(tx); err != nil {
			return err
		}
		t := tx.InsertTransaction(ledger.Transaction{
			Type:               typ,
			SourceAccount:      optional(src),
			DestinationAccount: optional(dst),
			Amount:             amount,
			Timestamp:          s.now().UTC(),
		})
		if cfg.key != "" {
			tx.SaveIdempotent(cfg.key, storage.IdempotencyRecord{Fingerprint: fingerprint, Transaction: t})
		}
		out = Posted{Transaction: t}
		return nil
	})
	if err != nil {
		rejections.WithLabelValues(string(typ), reason(err)).Inc()
		return Posted{}, err
	}
	if out.Replayed {
		s.logger.DebugContext(ctx, "idempotent replay", "transaction_id", out.ID, "key", cfg.key)
		return out, nil
	}
	posted.WithLabelValues(string(typ)).Inc()
	s.logger.DebugContext(ctx, "transaction posted", "transaction_id", out.ID, "type", string(typ), "amount", amount.Decimal().Trim(0).String())
	if err := s.pub.Publish(ctx, events.NewTransactionPosted(out.Transaction)); err != nil {
		s.logger.WarnContext(ctx, "publish transaction event failed", "transaction_id", out.ID, "err", err)
	}
	return out, nil
}

func (s *service) validateAmount(amount money.Amount) error {
	if amount.Curr().Code() != s.currency {
		return fmt.Errorf("amount currency %s, want %s: %w", amount.Curr().Code(), s.currency, errs.ErrValidation)
	}
	if !amount.IsPos() {
		return fmt.Errorf("amount must be positive: %w", errs.ErrValidation)
	}
	return nil
}

// credit adds amount to balance. A sum the amount type cannot represent is
// rejected as invalid input rather than surfacing the arithmetic error.
func credit(balance, amount money.Amount) (money.Amount, error) {
	next, err := balance.Add(amount)
	if err != nil {
		return money.Amount{}, fmt.Errorf("balance overflow: %v: %w", err, errs.ErrValidation)
	}
	return next, nil
}

// debit subtracts amount from balance, refusing to go below zero.
func debit(balance, amount money.Amount) (money.Amount, error) {
	c, err := amount.Cmp(balance)
	if err != nil {
		return money.Amount{}, err
	}
	if c > 0 {
		return money.Amount{}, fmt.Errorf("balance %s, requested %s: %w", balance.Decimal(), amount.Decimal(), errs.ErrInsufficientFunds)
	}
	return balance.Sub(amount)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// reason labels a rejection for metrics.
func reason(err error) string {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return "validation_error"
	case errors.Is(err, errs.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, errs.ErrSameAccount):
		return "same_account"
	case errors.Is(err, errs.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, errs.ErrIdempotencyConflict):
		return "idempotency_conflict"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "internal"
}
