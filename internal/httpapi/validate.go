package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/govalues/money"

	"github.com/tinoosan/bank/internal/idempotency"
	"github.com/tinoosan/bank/internal/ledger"
	"github.com/tinoosan/bank/internal/service/account"
	"github.com/tinoosan/bank/internal/service/transaction"
)

type ctxKey string

const (
	ctxKeyPostClient       ctxKey = "validatedPostClient"
	ctxKeyPutClient        ctxKey = "validatedPutClient"
	ctxKeyClientID         ctxKey = "validatedClientID"
	ctxKeyPostAccount      ctxKey = "validatedPostAccount"
	ctxKeyListAccounts     ctxKey = "validatedListAccounts"
	ctxKeyListTransactions ctxKey = "validatedListTransactions"
	ctxKeyTransactionID    ctxKey = "validatedTransactionID"
	ctxKeyMovement         ctxKey = "validatedMovement"
)

// dateLayout is the calendar-date format accepted by the from/to filters.
const dateLayout = "2006-01-02"

type postAccountInput struct {
	ClientID int
	Type     ledger.AccountType
}

// movementInput is a decoded deposit, withdrawal or transfer request.
type movementInput struct {
	Source      string
	Destination string
	Amount      money.Amount
	Key         string
}

func (m movementInput) options() []transaction.MoveOption {
	if m.Key == "" {
		return nil
	}
	return []transaction.MoveOption{transaction.IdempotencyKey(m.Key)}
}

// validateClientBody decodes {name,email} and runs the client service's field checks.
func (s *Server) validateClientBody(key ctxKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req clientRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if err := s.clients.ValidateCreate(req.Name, req.Email); err != nil {
				s.writeServiceErr(w, r, err)
				return
			}
			ctx := context.WithValue(r.Context(), key, req)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Server) validateClientID() func(http.Handler) http.Handler {
	return intParam("id", "invalid client id", ctxKeyClientID)
}

func (s *Server) validateTransactionID() func(http.Handler) http.Handler {
	return intParam("id", "invalid transaction id", ctxKeyTransactionID)
}

// intParam parses a positive integer path parameter into the context.
func intParam(name, msg string, key ctxKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.Atoi(chi.URLParam(r, name))
			if err != nil || id <= 0 {
				badRequest(w, msg)
				return
			}
			ctx := context.WithValue(r.Context(), key, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validatePostAccount parses and validates POST /accounts body.
func (s *Server) validatePostAccount() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			var req postAccountRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if req.ClientID == nil {
				badRequest(w, "client_id is required")
				return
			}
			typ, ok := ledger.ParseAccountType(req.Type)
			if !ok {
				badRequest(w, "type must be one of SAVINGS, CHECKING, CREDIT")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyPostAccount, postAccountInput{ClientID: *req.ClientID, Type: typ})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateListAccounts validates the optional client_id and type filters.
func (s *Server) validateListAccounts() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			var f account.Filter
			if raw := q.Get("client_id"); raw != "" {
				id, err := strconv.Atoi(raw)
				if err != nil {
					badRequest(w, "invalid client_id")
					return
				}
				f.ClientID = &id
			}
			if raw := q.Get("type"); raw != "" {
				typ, ok := ledger.ParseAccountType(raw)
				if !ok {
					badRequest(w, "invalid type")
					return
				}
				f.Type = &typ
			}
			ctx := context.WithValue(r.Context(), ctxKeyListAccounts, f)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateListTransactions parses account, from and to (YYYY-MM-DD).
func (s *Server) validateListTransactions() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			var f transaction.Filter
			if raw := strings.TrimSpace(q.Get("account")); raw != "" {
				f.Account = &raw
			}
			for _, p := range []struct {
				name string
				dst  **time.Time
			}{{"from", &f.From}, {"to", &f.To}} {
				raw := q.Get(p.name)
				if raw == "" {
					continue
				}
				d, err := time.Parse(dateLayout, raw)
				if err != nil {
					badRequest(w, "invalid "+p.name+" date, expected YYYY-MM-DD")
					return
				}
				*p.dst = &d
			}
			ctx := context.WithValue(r.Context(), ctxKeyListTransactions, f)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Server) validateDeposit() func(http.Handler) http.Handler {
	return s.validateMovement(func(w http.ResponseWriter, r *http.Request) (movementInput, bool) {
		var req movementRequest
		if !decodeJSON(w, r, &req) {
			return movementInput{}, false
		}
		amt, ok := s.parseAmount(w, req.Amount)
		return movementInput{Destination: req.Account, Amount: amt}, ok
	})
}

func (s *Server) validateWithdraw() func(http.Handler) http.Handler {
	return s.validateMovement(func(w http.ResponseWriter, r *http.Request) (movementInput, bool) {
		var req movementRequest
		if !decodeJSON(w, r, &req) {
			return movementInput{}, false
		}
		amt, ok := s.parseAmount(w, req.Amount)
		return movementInput{Source: req.Account, Amount: amt}, ok
	})
}

func (s *Server) validateTransfer() func(http.Handler) http.Handler {
	return s.validateMovement(func(w http.ResponseWriter, r *http.Request) (movementInput, bool) {
		var req transferRequest
		if !decodeJSON(w, r, &req) {
			return movementInput{}, false
		}
		amt, ok := s.parseAmount(w, req.Amount)
		return movementInput{Source: req.Origin, Destination: req.Destination, Amount: amt}, ok
	})
}

// validateMovement requires JSON, runs decode and captures the Idempotency-Key header.
// Amount sign and account existence are left to the transaction service.
func (s *Server) validateMovement(decode func(http.ResponseWriter, *http.Request) (movementInput, bool)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			in, ok := decode(w, r)
			if !ok {
				return
			}
			in.Key = strings.TrimSpace(r.Header.Get("Idempotency-Key"))
			if in.Key != "" && !idempotency.Valid(in.Key) {
				badRequest(w, "invalid Idempotency-Key")
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyMovement, in)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Server) parseAmount(w http.ResponseWriter, n json.Number) (money.Amount, bool) {
	if n == "" {
		badRequest(w, "amount is required")
		return money.Amount{}, false
	}
	amt, err := ledger.AmountFromNumber(s.currency, n)
	if err != nil {
		badRequest(w, "invalid amount")
		return money.Amount{}, false
	}
	return amt, true
}
