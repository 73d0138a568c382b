package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/tinoosan/bank/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusBadRequest, msg, "validation_error")
}

func notFound(w http.ResponseWriter) { writeErr(w, http.StatusNotFound, "not_found", "not_found") }

// writeServiceErr maps service sentinel errors onto status codes and error codes.
// The more specific not-found errors are checked before the generic one they wrap.
func (s *Server) writeServiceErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, errs.ErrAccountNotFound):
		status, code = http.StatusNotFound, "account_not_found"
	case errors.Is(err, errs.ErrClientNotFound):
		status, code = http.StatusNotFound, "client_not_found"
	case errors.Is(err, errs.ErrNotFound):
		notFound(w)
		return
	case errors.Is(err, errs.ErrValidation):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, errs.ErrDuplicateEmail):
		status, code = http.StatusBadRequest, "duplicate_email"
	case errors.Is(err, errs.ErrSameAccount):
		status, code = http.StatusBadRequest, "same_account"
	case errors.Is(err, errs.ErrHasActiveAccounts):
		status, code = http.StatusBadRequest, "has_active_accounts"
	case errors.Is(err, errs.ErrNonZeroBalance):
		status, code = http.StatusBadRequest, "non_zero_balance"
	case errors.Is(err, errs.ErrInsufficientFunds):
		status, code = http.StatusBadRequest, "insufficient_funds"
	case errors.Is(err, errs.ErrIdempotencyConflict):
		status, code = http.StatusConflict, "idempotency_conflict"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusServiceUnavailable, "canceled"
	}
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "unhandled service error", "err", err, "path", r.URL.Path)
		writeErr(w, status, "internal error", code)
		return
	}
	writeErr(w, status, err.Error(), code)
}
