// Package account implements the account rules: accounts belong to an existing
// client, numbers are system generated, and only empty accounts can be deleted.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tinoosan/bank/internal/errs"
	"github.com/tinoosan/bank/internal/ledger"
	"github.com/tinoosan/bank/internal/storage"
)

// Filter narrows List. Nil fields match everything; set fields are AND-combined.
type Filter struct {
	ClientID *int
	Type     *ledger.AccountType
}

func (f Filter) match(a ledger.Account) bool {
	if f.ClientID != nil && a.ClientID != *f.ClientID {
		return false
	}
	if f.Type != nil && a.Type != *f.Type {
		return false
	}
	return true
}

type Service interface {
	List(ctx context.Context, f Filter) ([]ledger.Account, error)
	Get(ctx context.Context, number string) (ledger.Account, error)
	Create(ctx context.Context, clientID int, typ ledger.AccountType) (ledger.Account, error)
	UpdateType(ctx context.Context, number string, typ ledger.AccountType) (ledger.Account, error)
	Delete(ctx context.Context, number string) error
}

type service struct {
	store    storage.Store
	currency string
	logger   *slog.Logger
}

// New returns an account Service. New accounts open with a zero balance in currency.
func New(store storage.Store, currency string, logger *slog.Logger) Service {
	if currency == "" {
		currency = ledger.DefaultCurrency
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &service{store: store, currency: currency, logger: logger}
}

func (s *service) List(ctx context.Context, f Filter) ([]ledger.Account, error) {
	out := []ledger.Account{}
	err := s.store.View(ctx, func(r storage.Reader) error {
		for _, a := range r.Accounts() {
			if f.match(a) {
				out = append(out, a)
			}
		}
		return nil
	})
	return out, err
}

func (s *service) Get(ctx context.Context, number string) (ledger.Account, error) {
	var out ledger.Account
	err := s.store.View(ctx, func(r storage.Reader) error {
		a, ok := r.Account(number)
		if !ok {
			return errs.ErrNotFound
		}
		out = a
		return nil
	})
	return out, err
}

func (s *service) Create(ctx context.Context, clientID int, typ ledger.AccountType) (ledger.Account, error) {
	if !typ.Valid() {
		return ledger.Account{}, fmt.Errorf("unknown account type %q: %w", typ, errs.ErrValidation)
	}
	zero, err := ledger.ZeroAmount(s.currency)
	if err != nil {
		return ledger.Account{}, err
	}
	var out ledger.Account
	err = s.store.Update(ctx, func(tx storage.Tx) error {
		if _, ok := tx.Client(clientID); !ok {
			return errs.ErrClientNotFound
		}
		out = tx.InsertAccount(ledger.Account{ClientID: clientID, Type: typ, Balance: zero})
		return nil
	})
	if err != nil {
		return ledger.Account{}, err
	}
	s.logger.DebugContext(ctx, "account created", "account", out.Number, "client_id", clientID)
	return out, nil
}

// UpdateType changes only the account type; balance and owner are kept.
func (s *service) UpdateType(ctx context.Context, number string, typ ledger.AccountType) (ledger.Account, error) {
	if !typ.Valid() {
		return ledger.Account{}, fmt.Errorf("unknown account type %q: %w", typ, errs.ErrValidation)
	}
	var out ledger.Account
	err := s.store.Update(ctx, func(tx storage.Tx) error {
		a, ok := tx.Account(number)
		if !ok {
			return errs.ErrNotFound
		}
		a.Type = typ
		tx.PutAccount(a)
		out = a
		return nil
	})
	if err != nil {
		return ledger.Account{}, err
	}
	s.logger.DebugContext(ctx, "account type updated", "account", number, "type", string(typ))
	return out, nil
}

func (s *service) Delete(ctx context.Context, number string) error {
	err := s.store.Update(ctx, func(tx storage.Tx) error {
		a, ok := tx.Account(number)
		if !ok {
			return errs.ErrNotFound
		}
		if !a.Balance.IsZero() {
			return fmt.Errorf("account %s holds %s: %w", number, a.Balance, errs.ErrNonZeroBalance)
		}
		tx.DeleteAccount(number)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "account deleted", "account", number)
	return nil
}
