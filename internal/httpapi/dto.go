package httpapi

import (
	"encoding/json"
	"time"

	"github.com/tinoosan/bank/internal/ledger"
)

type clientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type clientResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type postAccountRequest struct {
	ClientID *int   `json:"client_id"`
	Type     string `json:"type"`
}

type updateAccountRequest struct {
	Type string `json:"type"`
}

type accountResponse struct {
	Number   string             `json:"number"`
	ClientID int                `json:"client_id"`
	Type     ledger.AccountType `json:"type"`
	Balance  float64            `json:"balance"`
}

type movementRequest struct {
	Account string      `json:"account"`
	Amount  json.Number `json:"amount"`
}

type transferRequest struct {
	Origin      string      `json:"origin"`
	Destination string      `json:"destination"`
	Amount      json.Number `json:"amount"`
}

type updateNoteRequest struct {
	Note *string `json:"note"`
}

type transactionResponse struct {
	ID                 int                    `json:"id"`
	Type               ledger.TransactionType `json:"type"`
	SourceAccount      *string                `json:"source_account"`
	DestinationAccount *string                `json:"destination_account"`
	Amount             float64                `json:"amount"`
	Timestamp          time.Time              `json:"timestamp"`
	Note               *string                `json:"note"`
}

func toClientResponse(c ledger.Client) clientResponse {
	return clientResponse{ID: c.ID, Name: c.Name, Email: c.Email}
}

func toAccountResponse(a ledger.Account) accountResponse {
	return accountResponse{
		Number:   a.Number,
		ClientID: a.ClientID,
		Type:     a.Type,
		Balance:  ledger.AmountToFloat(a.Balance),
	}
}

func toTransactionResponse(t ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:                 t.ID,
		Type:               t.Type,
		SourceAccount:      t.SourceAccount,
		DestinationAccount: t.DestinationAccount,
		Amount:             ledger.AmountToFloat(t.Amount),
		Timestamp:          t.Timestamp,
		Note:               t.Note,
	}
}
