package errs

import (
	"errors"
	"fmt"
)

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	// ErrValidation marks malformed input: non-positive amounts, bad string lengths, unknown enums.
	ErrValidation = errors.New("validation_error")

	// ErrClientNotFound and ErrAccountNotFound narrow ErrNotFound to a referenced entity.
	ErrClientNotFound  = fmt.Errorf("client_not_found: %w", ErrNotFound)
	ErrAccountNotFound = fmt.Errorf("account_not_found: %w", ErrNotFound)

	// ErrDuplicateEmail indicates another client already owns the email.
	ErrDuplicateEmail = errors.New("duplicate_email")
	// ErrHasActiveAccounts blocks deleting a client that still owns accounts.
	ErrHasActiveAccounts = errors.New("has_active_accounts")
	// ErrNonZeroBalance blocks deleting an account holding money.
	ErrNonZeroBalance = errors.New("non_zero_balance")
	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient_funds")
	// ErrSameAccount rejects a transfer whose origin and destination match.
	ErrSameAccount = errors.New("same_account")
	// ErrIdempotencyConflict means an Idempotency-Key was reused with a different request.
	ErrIdempotencyConflict = errors.New("idempotency_conflict")
)
