package httpapi

import (
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/bank/internal/ledger"
	"github.com/tinoosan/bank/internal/service/account"
)

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	f, _ := r.Context().Value(ctxKeyListAccounts).(account.Filter)
	list, err := s.accounts.List(r.Context(), f)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	out := make([]accountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccountResponse(a))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
	in, _ := r.Context().Value(ctxKeyPostAccount).(postAccountInput)
	a, err := s.accounts.Create(r.Context(), in.ClientID, in.Type)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, toAccountResponse(a))
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	a, err := s.accounts.Get(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(a))
}

// updateAccountType handles PUT /accounts/{number}. The new type comes from
// the ?type= query parameter or, when absent, a JSON body {"type": ...}.
func (s *Server) updateAccountType(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("type")
	if raw == "" {
		if !requireJSON(w, r) {
			return
		}
		var req updateAccountRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		raw = req.Type
	}
	typ, ok := ledger.ParseAccountType(raw)
	if !ok {
		badRequest(w, "type must be one of SAVINGS, CHECKING, CREDIT")
		return
	}
	a, err := s.accounts.UpdateType(r.Context(), strings.TrimSpace(chi.URLParam(r, "number")), typ)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toAccountResponse(a))
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Delete(r.Context(), chi.URLParam(r, "number")); err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, messageResponse{Message: "account deleted"})
}
