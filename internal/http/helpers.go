package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"ledger/internal/core"
	"ledger/internal/ledger"
	"ledger/internal/storage"
)

var (
	errNoSuchRoute    = errors.New("no such route")
	errImportDisabled = errors.New("sheets import is not configured")
)

// transactionResponse is a Transaction on the wire: fixed-point decimal
// strings and an ISO date.
type transactionResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Balance     string `json:"balance"`
}

type summaryResponse struct {
	TotalDebit     string `json:"total_debit"`
	TotalCredit    string `json:"total_credit"`
	CurrentBalance string `json:"current_balance"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Kind    string   `json:"kind,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Row     *int     `json:"row,omitempty"`
	Column  string   `json:"column,omitempty"`
	// Saved is false when the mutation took effect in memory but the
	// ledger file could not be written; the caller should retry the
	// save or warn the user.
	Saved *bool `json:"saved,omitempty"`
	// Result carries the in-memory outcome of a mutated-but-unsaved
	// operation.
	Result any `json:"result,omitempty"`
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date.String(),
		Description: tx.Description,
		Category:    tx.Category,
		Debit:       core.FormatAmount(tx.Debit),
		Credit:      core.FormatAmount(tx.Credit),
		Balance:     core.FormatAmount(tx.Balance),
	}
}

func toTransactionResponses(records []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(records))
	for i := range records {
		out[i] = toTransactionResponse(records[i])
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeStoreError maps a store error onto a status and a structured
// body. result, when non-nil, is included for persistence failures so
// the caller can see the mutated-but-unsaved state.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, result any) {
	var vErr *core.ValidationError
	switch {
	case errors.As(err, &vErr):
		resp := errorResponse{
			Error:   vErr.Error(),
			Kind:    string(vErr.Kind),
			Columns: vErr.Columns,
			Column:  vErr.Column,
		}
		if vErr.Kind == core.BadDate || vErr.Kind == core.BadNumber {
			row := vErr.Row
			resp.Row = &row
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, core.ErrInvalidRecord):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, ledger.ErrIndexOutOfRange):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, storage.ErrPersistence):
		saved := false
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:  err.Error(),
			Saved:  &saved,
			Result: result,
		})
	default:
		s.logger.ErrorContext(r.Context(), "Unhandled store error", "error", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}
