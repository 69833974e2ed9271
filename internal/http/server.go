// Package http exposes the expense pipeline as a JSON API.
package http

import (
	"net/http"
	"time"

	applog "spendlens/internal/log"
	"spendlens/internal/services"
)

const defaultReportPath = "data/report.xlsx"

type Server struct {
	http.Server
	service    *services.ExpenseService
	reportPath string
}

type Option func(*Server)

// WithReportPath changes where POST /api/report writes when the request
// names no path.
func WithReportPath(path string) Option {
	return func(s *Server) { s.reportPath = path }
}

// NewServer configures routes and timeouts, returning a ready-to-run server.
func NewServer(addr string, service *services.ExpenseService, logger *applog.Logger, opts ...Option) *Server {
	s := &Server{
		Server: http.Server{
			Addr:           addr,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   60 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		service:    service,
		reportPath: defaultReportPath,
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("DELETE /api/expenses", s.handleClearExpenses)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("POST /api/report", s.handleExportReport)
	mux.HandleFunc("POST /api/ask", s.handleAsk)
	mux.HandleFunc("POST /api/transcribe", s.handleTranscribe)
	mux.HandleFunc("GET /healthz", handleHealth)

	handler := http.Handler(mux)
	if logger != nil {
		handler = applog.Middleware(logger.WithComponent("http"))(handler)
	}
	s.Handler = handler
	return s
}

// Routes exposes the configured handler, mainly for tests.
func (s *Server) Routes() http.Handler {
	return s.Handler
}
