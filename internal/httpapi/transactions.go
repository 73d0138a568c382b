package httpapi

import (
	"net/http"

	"github.com/tinoosan/bank/internal/service/transaction"
)

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	f, _ := r.Context().Value(ctxKeyListTransactions).(transaction.Filter)
	list, err := s.txs.List(r.Context(), f)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	out := make([]transactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransactionResponse(t))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id, _ := r.Context().Value(ctxKeyTransactionID).(int)
	t, err := s.txs.Get(r.Context(), id)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toTransactionResponse(t))
}

// updateTransactionNote handles PUT /transactions/{id}; only the note is editable.
func (s *Server) updateTransactionNote(w http.ResponseWriter, r *http.Request) {
	if !requireJSON(w, r) {
		return
	}
	id, _ := r.Context().Value(ctxKeyTransactionID).(int)
	var req updateNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Note == nil {
		badRequest(w, "note is required")
		return
	}
	t, err := s.txs.UpdateNote(r.Context(), id, *req.Note)
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, _ := r.Context().Value(ctxKeyTransactionID).(int)
	if err := s.txs.Delete(r.Context(), id); err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, messageResponse{Message: "transaction deleted"})
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	in, _ := r.Context().Value(ctxKeyMovement).(movementInput)
	p, err := s.txs.Deposit(r.Context(), in.Destination, in.Amount, in.options()...)
	s.writePosted(w, r, p, err)
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	in, _ := r.Context().Value(ctxKeyMovement).(movementInput)
	p, err := s.txs.Withdraw(r.Context(), in.Source, in.Amount, in.options()...)
	s.writePosted(w, r, p, err)
}

func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	in, _ := r.Context().Value(ctxKeyMovement).(movementInput)
	p, err := s.txs.Transfer(r.Context(), in.Source, in.Destination, in.Amount, in.options()...)
	s.writePosted(w, r, p, err)
}

// writePosted answers 201 for a new transaction and 200 for an idempotent replay.
func (s *Server) writePosted(w http.ResponseWriter, r *http.Request, p transaction.Posted, err error) {
	if err != nil {
		s.writeServiceErr(w, r, err)
		return
	}
	status := http.StatusCreated
	if p.Replayed {
		w.Header().Set("Idempotent-Replay", "true")
		status = http.StatusOK
	}
	toJSON(w, status, toTransactionResponse(p.Transaction))
}
