package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/tinoosan/bank/internal/dictionary"
)

// root is the static liveness payload served at /.
func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, map[string]string{"status": "ok", "msg": "bank API running"})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.ready == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
	defer cancel()
	if err := s.ready.Ready(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GET /dictionary/types
func (s *Server) getTypesDictionary(w http.ResponseWriter, r *http.Request) {
	out := struct {
		AccountTypes     []dictionary.TypeDef `json:"account_types"`
		TransactionTypes []dictionary.TypeDef `json:"transaction_types"`
	}{
		AccountTypes:     dictionary.AccountTypes(),
		TransactionTypes: dictionary.TransactionTypes(),
	}
	toJSON(w, http.StatusOK, out)
}
