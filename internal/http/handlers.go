package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"ledger/internal/core"
)

// draftRequest is the add payload. Amounts arrive as decimal strings so
// nothing passes through binary floats.
type draftRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

type removeRequest struct {
	Indices []int `json:"indices"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleList(w, r)
	case http.MethodPost:
		s.handleAdd(w, r)
	case http.MethodPut:
		s.handleReplaceAll(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, PUT")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toTransactionResponses(s.store.List()))
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	draft, err := req.draft()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	tx, err := s.store.Add(r.Context(), draft)
	if err != nil {
		s.writeStoreError(w, r, err, toTransactionResponse(tx))
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleReplaceAll(w http.ResponseWriter, r *http.Request) {
	var table core.Table
	if err := json.NewDecoder(r.Body).Decode(&table); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	records, err := s.store.ReplaceAll(r.Context(), table)
	if err != nil {
		s.writeStoreError(w, r, err, toTransactionResponses(records))
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(records))
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, errNoSuchRoute)
		return
	}

	if err := s.store.RemoveByID(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveMany(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req removeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.store.RemoveMany(r.Context(), req.Indices); err != nil {
		s.writeStoreError(w, r, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImportSheets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.source == nil {
		writeError(w, http.StatusNotImplemented, errImportDisabled)
		return
	}

	table, err := s.source.FetchTable(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Sheets fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}

	records, err := s.store.ReplaceAll(r.Context(), table)
	if err != nil {
		s.writeStoreError(w, r, err, toTransactionResponses(records))
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(records))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sum := s.store.Summary()
	writeJSON(w, http.StatusOK, summaryResponse{
		TotalDebit:     core.FormatAmount(sum.TotalDebit),
		TotalCredit:    core.FormatAmount(sum.TotalCredit),
		CurrentBalance: core.FormatAmount(sum.CurrentBalance),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Categories().Names())
}

func (req draftRequest) draft() (core.Draft, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Draft{}, err
	}
	debit, err := core.ParseAmount(req.Debit)
	if err != nil {
		return core.Draft{}, err
	}
	credit, err := core.ParseAmount(req.Credit)
	if err != nil {
		return core.Draft{}, err
	}
	return core.Draft{
		Date:        date,
		Description: req.Description,
		Category:    req.Category,
		Debit:       debit,
		Credit:      credit,
	}, nil
}
