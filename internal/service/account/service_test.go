package account

import (
	"context"
	"errors"
	"testing"

	"github.com/govalues/money"
	"github.com/tinoosan/bank/internal/errs"
	"github.com/tinoosan/bank/internal/ledger"
	"github.com/tinoosan/bank/internal/storage"
	"github.com/tinoosan/bank/internal/storage/memory"
)

func setup(t *testing.T) (*memory.Store, Service, ledger.Client) {
	t.Helper()
	store := memory.New()
	var ana ledger.Client
	_ = store.Update(context.Background(), func(tx storage.Tx) error {
		ana = tx.InsertClient(ledger.Client{Name: "Ana", Email: "ana@x.com"})
		return nil
	})
	return store, New(store, "USD", nil), ana
}

func TestCreate_NumbersAndZeroBalance(t *testing.T) {
	_, svc, ana := setup(t)
	ctx := context.Background()
	a1, err := svc.Create(ctx, ana.ID, ledger.AccountTypeSavings)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a1.Number != "ACC0001" || !a1.Balance.IsZero() || a1.ClientID != ana.ID {
		t.Fatalf("unexpected account: %+v", a1)
	}
	if err := svc.Delete(ctx, a1.Number); err != nil {
		t.Fatalf("delete: %v", err)
	}
	a2, _ := svc.Create(ctx, ana.ID, ledger.AccountTypeChecking)
	if a2.Number != "ACC0002" {
		t.Fatalf("numbers must not be reused, got %s", a2.Number)
	}
}

func TestCreate_MissingClient(t *testing.T) {
	_, svc, _ := setup(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, 99, ledger.AccountTypeSavings); !errors.Is(err, errs.ErrClientNotFound) {
		t.Fatalf("expected client_not_found, got %v", err)
	}
	if !errors.Is(errs.ErrClientNotFound, errs.ErrNotFound) {
		t.Fatalf("client_not_found must wrap not_found")
	}
	list, _ := svc.List(ctx, Filter{})
	if len(list) != 0 {
		t.Fatalf("expected no accounts, got %d", len(list))
	}
	if _, err := svc.Create(ctx, 1, ledger.AccountType("GOLD")); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestList_Filters(t *testing.T) {
	store, svc, ana := setup(t)
	ctx := context.Background()
	var bob ledger.Client
	_ = store.Update(ctx, func(tx storage.Tx) error {
		bob = tx.InsertClient(ledger.Client{Name: "Bob", Email: "bob@x.com"})
		return nil
	})
	_, _ = svc.Create(ctx, ana.ID, ledger.AccountTypeSavings)
	_, _ = svc.Create(ctx, ana.ID, ledger.AccountTypeChecking)
	_, _ = svc.Create(ctx, bob.ID, ledger.AccountTypeSavings)

	savings := ledger.AccountTypeSavings
	tests := []struct {
		name string
		f    Filter
		want []string
	}{
		{"all", Filter{}, []string{"ACC0001", "ACC0002", "ACC0003"}},
		{"client", Filter{ClientID: &ana.ID}, []string{"ACC0001", "ACC0002"}},
		{"type", Filter{Type: &savings}, []string{"ACC0001", "ACC0003"}},
		{"both", Filter{ClientID: &bob.ID, Type: &savings}, []string{"ACC0003"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.f)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %+v", tt.want, got)
			}
			for i := range got {
				if got[i].Number != tt.want[i] {
					t.Fatalf("expected %v, got %+v", tt.want, got)
				}
			}
		})
	}
}

func TestUpdateType_KeepsBalance(t *testing.T) {
	store, svc, ana := setup(t)
	ctx := context.Background()
	a, _ := svc.Create(ctx, ana.ID, ledger.AccountTypeSavings)
	fund(t, store, a.Number, 2500)

	got, err := svc.UpdateType(ctx, a.Number, ledger.AccountTypeCredit)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	gotUnits, _ := got.Balance.MinorUnits()
	if got.Type != ledger.AccountTypeCredit || gotUnits != 2500 || got.ClientID != ana.ID {
		t.Fatalf("unexpected account: %+v", got)
	}
	if _, err := svc.UpdateType(ctx, "ACC9999", ledger.AccountTypeCredit); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDelete_OnlyWhenEmpty(t *testing.T) {
	store, svc, ana := setup(t)
	ctx := context.Background()
	a, _ := svc.Create(ctx, ana.ID, ledger.AccountTypeSavings)
	fund(t, store, a.Number, 1)

	if err := svc.Delete(ctx, a.Number); !errors.Is(err, errs.ErrNonZeroBalance) {
		t.Fatalf("expected non_zero_balance, got %v", err)
	}
	if _, err := svc.Get(ctx, a.Number); err != nil {
		t.Fatalf("account should remain: %v", err)
	}
	fund(t, store, a.Number, 0)
	if err := svc.Delete(ctx, a.Number); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, a.Number); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func fund(t *testing.T, store *memory.Store, number string, minor int64) {
	t.Helper()
	amt, err := money.NewAmountFromMinorUnits("USD", minor)
	if err != nil {
		t.Fatalf("amount: %v", err)
	}
	_ = store.Update(context.Background(), func(tx storage.Tx) error {
		a, _ := tx.Account(number)
		a.Balance = amt
		tx.PutAccount(a)
		return nil
	})
}
