package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"spendlens/internal/core"
	"spendlens/internal/services"
	"spendlens/internal/store"
)

// Audio uploads larger than this are rejected before touching the provider.
const maxAudioBytes = 25 << 20

type expenseJSON struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	AmountCents int64   `json:"amount_cents"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes,omitempty"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		Date:        e.Date.String(),
		Category:    string(e.Category),
		AmountCents: e.Amount.Cents,
		Amount:      e.Amount.Dollars(),
		Notes:       e.Notes,
	}
}

type createExpenseRequest struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
	Amount   string `json:"amount,omitempty"`
	Date     string `json:"date,omitempty"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusUnprocessableEntity, "text is required")
		return
	}

	var ov services.Overrides
	if req.Category != "" {
		cat, ok := core.CategoryFromString(req.Category)
		if !ok {
			respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("unknown category %q", req.Category))
			return
		}
		ov.Category = &cat
	}
	if req.Amount != "" {
		cents, err := core.ParseAmountToCents(req.Amount)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
		ov.Amount = &core.Money{Cents: cents}
	}
	if req.Date != "" {
		date, err := core.ParseDate(req.Date)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "invalid date, want YYYY-MM-DD")
			return
		}
		ov.Date = &date
	}

	expense, err := s.service.AddFromText(r.Context(), req.Text, ov)
	if err != nil {
		if errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrInvalidCategory) || errors.Is(err, core.ErrInvalidDate) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.storeError(w, r, "create expense", err)
		return
	}
	respondJSON(w, http.StatusCreated, toExpenseJSON(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.service.ListExpenses(r.Context())
	if err != nil {
		s.storeError(w, r, "list expenses", err)
		return
	}
	out := make([]expenseJSON, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseJSON(e))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ClearAll(r.Context()); err != nil {
		s.storeError(w, r, "clear expenses", err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type categoryTotalJSON struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

type dashboardJSON struct {
	CategoryTotals []categoryTotalJSON `json:"category_totals"`
	TotalSpending  float64             `json:"total_spending"`
	ExpenseCount   int                 `json:"expense_count"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.service.Dashboard(r.Context())
	if err != nil {
		s.storeError(w, r, "dashboard", err)
		return
	}
	out := dashboardJSON{
		CategoryTotals: make([]categoryTotalJSON, 0, len(dash.CategoryTotals)),
		TotalSpending:  dash.TotalSpending.Dollars(),
		ExpenseCount:   dash.ExpenseCount,
	}
	for _, ct := range dash.CategoryTotals {
		out.CategoryTotals = append(out.CategoryTotals, categoryTotalJSON{
			Category: string(ct.Category),
			Total:    ct.Total.Dollars(),
			Count:    ct.Count,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

type reportRequest struct {
	Path string `json:"path,omitempty"`
}

type reportResponse struct {
	Path string `json:"path"`
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	req := reportRequest{Path: s.reportPath}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Path == "" {
			req.Path = s.reportPath
		}
	}

	if err := s.service.ExportReport(r.Context(), req.Path); err != nil {
		slog.ErrorContext(r.Context(), "report export failed", "path", req.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "report export failed")
		return
	}
	respondJSON(w, http.StatusOK, reportResponse{Path: req.Path})
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respondError(w, http.StatusUnprocessableEntity, "question is required")
		return
	}

	answer, err := s.service.AskAI(r.Context(), req.Question)
	if err != nil {
		s.aiError(w, r, "ask", err)
		return
	}
	respondJSON(w, http.StatusOK, askResponse{Answer: answer})
}

type transcribeResponse struct {
	Text string `json:"text"`
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	audio, err := io.ReadAll(io.LimitReader(r.Body, maxAudioBytes+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read audio body")
		return
	}
	if len(audio) == 0 {
		respondError(w, http.StatusUnprocessableEntity, "audio body is required")
		return
	}
	if len(audio) > maxAudioBytes {
		respondError(w, http.StatusRequestEntityTooLarge, "audio exceeds 25MB limit")
		return
	}

	text, err := s.service.Transcribe(r.Context(), audio)
	if err != nil {
		s.aiError(w, r, "transcribe", err)
		return
	}
	respondJSON(w, http.StatusOK, transcribeResponse{Text: text})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), op+" failed", "error", err)
	switch {
	case errors.Is(err, store.ErrUnreadable):
		respondError(w, http.StatusInternalServerError, "expense data is unreadable")
	case errors.Is(err, store.ErrWriteFailed):
		respondError(w, http.StatusInternalServerError, "failed to persist expense data")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) aiError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, services.ErrAIUnavailable):
		respondError(w, http.StatusServiceUnavailable, "ai service not configured")
	case errors.Is(err, services.ErrAIProvider):
		slog.ErrorContext(r.Context(), op+" failed", "error", err)
		respondError(w, http.StatusBadGateway, "ai provider error")
	default:
		s.storeError(w, r, op, err)
	}
}
