// Package http exposes the ledger store to the presentation layer as a
// small JSON API. The presentation layer never touches the persistence
// adapters directly.
package http

import (
	"net/http"
	"time"

	"ledger/internal/ledger"
	"ledger/internal/log"
	"ledger/internal/sheets"
)

type Server struct {
	http.Server
	store  *ledger.Store
	source sheets.RowSource // optional bulk-import source
	logger *log.Logger
}

// NewServer wires the API routes. source may be nil, in which case the
// sheets import endpoint reports the feature as unavailable.
func NewServer(addr string, store *ledger.Store, source sheets.RowSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New("http", log.Config{})
	}
	s := &Server{
		store:  store,
		source: source,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/transactions/remove", s.handleRemoveMany)
	mux.HandleFunc("/api/import/sheets", s.handleImportSheets)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.Addr = addr
	s.Handler = s.withRequestLog(mux)
	s.ReadTimeout = 10 * time.Second
	s.WriteTimeout = 10 * time.Second
	s.IdleTimeout = 60 * time.Second
	s.MaxHeaderBytes = 1 << 16
	return s
}

// withRequestLog logs every request with its duration.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.InfoContext(r.Context(), "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
