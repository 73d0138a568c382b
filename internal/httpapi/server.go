// Package httpapi wires the HTTP surface of the bank service.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/bank/internal/service/account"
	"github.com/tinoosan/bank/internal/service/client"
	"github.com/tinoosan/bank/internal/service/transaction"
)

// ReadyChecker is implemented by dependencies that can report readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

// Deps are the services the handlers delegate to.
type Deps struct {
	Clients      client.Service
	Accounts     account.Service
	Transactions transaction.Service
	// Currency is the single currency request amounts are parsed in.
	Currency string
	// Ready, when set, backs /readyz.
	Ready ReadyChecker
}

// Server wires handlers and middleware using Chi.
type Server struct {
	clients  client.Service
	accounts account.Service
	txs      transaction.Service
	currency string
	ready    ReadyChecker
	log      *slog.Logger
	rt       *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by request logging and panic recovery.
func New(d Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(instrument(logger))
	r.Use(recoverer(logger))

	s := &Server{
		clients:  d.Clients,
		accounts: d.Accounts,
		txs:      d.Transactions,
		currency: d.Currency,
		ready:    d.Ready,
		log:      logger,
		rt:       r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	s.rt.Get("/", s.root)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Get("/readyz", s.readyz)
	s.rt.Method(http.MethodGet, "/metrics", metricsHandler())
	s.rt.Get("/dictionary/types", s.getTypesDictionary)

	s.rt.Route("/clients", func(r chi.Router) {
		r.Get("/", s.listClients)
		r.With(s.validateClientBody(ctxKeyPostClient)).Post("/", s.postClient)
		r.With(s.validateClientID()).Get("/{id}", s.getClient)
		r.With(s.validateClientID(), s.validateClientBody(ctxKeyPutClient)).Put("/{id}", s.putClient)
		r.With(s.validateClientID()).Delete("/{id}", s.deleteClient)
	})

	s.rt.Route("/accounts", func(r chi.Router) {
		r.With(s.validateListAccounts()).Get("/", s.listAccounts)
		r.With(s.validatePostAccount()).Post("/", s.postAccount)
		r.Get("/{number}", s.getAccount)
		r.Put("/{number}", s.updateAccountType)
		r.Delete("/{number}", s.deleteAccount)
	})

	s.rt.Route("/transactions", func(r chi.Router) {
		r.With(s.validateListTransactions()).Get("/", s.listTransactions)
		r.With(s.validateDeposit()).Post("/deposit", s.deposit)
		r.With(s.validateWithdraw()).Post("/withdraw", s.withdraw)
		r.With(s.validateTransfer()).Post("/transfer", s.transfer)
		r.With(s.validateTransactionID()).Get("/{id}", s.getTransaction)
		r.With(s.validateTransactionID()).Put("/{id}", s.updateTransactionNote)
		r.With(s.validateTransactionID()).Delete("/{id}", s.deleteTransaction)
	})
}
