// Package client implements the client rules: valid name and email, unique
// email across clients, and no deletion while accounts still reference a client.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/tinoosan/bank/internal/errs"
	"github.com/tinoosan/bank/internal/ledger"
	"github.com/tinoosan/bank/internal/storage"
)

type Service interface {
	ValidateCreate(name, email string) error
	List(ctx context.Context) ([]ledger.Client, error)
	Get(ctx context.Context, id int) (ledger.Client, error)
	Create(ctx context.Context, name, email string) (ledger.Client, error)
	Update(ctx context.Context, id int, name, email string) (ledger.Client, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	store  storage.Store
	logger *slog.Logger
}

// New returns a client Service backed by store. A nil logger discards output.
func New(store storage.Store, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &service{store: store, logger: logger}
}

// ValidateCreate checks the name length and email syntax.
func (s *service) ValidateCreate(name, email string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < 2 {
		return fmt.Errorf("name must be at least 2 characters: %w", errs.ErrValidation)
	}
	if !validEmail(email) {
		return fmt.Errorf("invalid email %q: %w", email, errs.ErrValidation)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]ledger.Client, error) {
	var out []ledger.Client
	err := s.store.View(ctx, func(r storage.Reader) error {
		out = r.Clients()
		return nil
	})
	return out, err
}

func (s *service) Get(ctx context.Context, id int) (ledger.Client, error) {
	var out ledger.Client
	err := s.store.View(ctx, func(r storage.Reader) error {
		c, ok := r.Client(id)
		if !ok {
			return errs.ErrNotFound
		}
		out = c
		return nil
	})
	return out, err
}

func (s *service) Create(ctx context.Context, name, email string) (ledger.Client, error) {
	if err := s.ValidateCreate(name, email); err != nil {
		return ledger.Client{}, err
	}
	in := ledger.Client{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	var out ledger.Client
	err := s.store.Update(ctx, func(tx storage.Tx) error {
		if _, taken := emailOwner(tx, in.Email); taken {
			return errs.ErrDuplicateEmail
		}
		out = tx.InsertClient(in)
		return nil
	})
	if err != nil {
		return ledger.Client{}, err
	}
	s.logger.DebugContext(ctx, "client created", "client_id", out.ID)
	return out, nil
}

// Update replaces name and email. Keeping one's own email is not a conflict.
func (s *service) Update(ctx context.Context, id int, name, email string) (ledger.Client, error) {
	if err := s.ValidateCreate(name, email); err != nil {
		return ledger.Client{}, err
	}
	out := ledger.Client{ID: id, Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	err := s.store.Update(ctx, func(tx storage.Tx) error {
		if _, ok := tx.Client(id); !ok {
			return errs.ErrNotFound
		}
		if owner, taken := emailOwner(tx, out.Email); taken && owner != id {
			return errs.ErrDuplicateEmail
		}
		tx.PutClient(out)
		return nil
	})
	if err != nil {
		return ledger.Client{}, err
	}
	s.logger.DebugContext(ctx, "client updated", "client_id", id)
	return out, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	err := s.store.Update(ctx, func(tx storage.Tx) error {
		if _, ok := tx.Client(id); !ok {
			return errs.ErrNotFound
		}
		for _, a := range tx.Accounts() {
			if a.ClientID == id {
				return fmt.Errorf("client %d owns account %s: %w", id, a.Number, errs.ErrHasActiveAccounts)
			}
		}
		tx.DeleteClient(id)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "client deleted", "client_id", id)
	return nil
}

// emailOwner finds the client holding email, compared case-insensitively.
func emailOwner(r storage.Reader, email string) (int, bool) {
	for _, c := range r.Clients() {
		if strings.EqualFold(c.Email, email) {
			return c.ID, true
		}
	}
	return 0, false
}

// validEmail accepts a bare addr-spec; display names ("Ana <a@x.com>") are rejected.
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	return at > 0 && strings.Contains(email[at+1:], ".")
}
