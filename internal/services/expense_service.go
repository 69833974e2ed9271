// Package services wires parser, store, analyzer, exporter, and the optional
// AI assistant behind the operations a UI needs. It applies defaults and
// translates errors; all business logic lives in the dependencies.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"spendlens/internal/analyze"
	"spendlens/internal/core"
	"spendlens/internal/store"
)

const (
	defaultAITimeout = 30 * time.Second

	// Upper bound on expenses included in the AI context.
	aiContextLimit = 100

	aiSystemPrompt = "You are a financial assistant analyzing expense data. " +
		"Provide clear, concise, and helpful insights."
)

// Overrides carry caller-supplied corrections for AddFromText. A set field
// always wins over the parsed value.
type Overrides struct {
	Category *core.Category
	Amount   *core.Money
	Date     *core.Date
}

type Config struct {
	Store     store.Store
	Parser    Parser
	Analyzer  *analyze.Analyzer
	Exporter  Exporter
	Assistant Assistant // optional
	AITimeout time.Duration
}

type ExpenseService struct {
	store     store.Store
	parser    Parser
	analyzer  *analyze.Analyzer
	exporter  Exporter
	assistant Assistant
	aiTimeout time.Duration
}

func New(cfg Config) *ExpenseService {
	timeout := cfg.AITimeout
	if timeout <= 0 {
		timeout = defaultAITimeout
	}
	analyzer := cfg.Analyzer
	if analyzer == nil {
		analyzer = analyze.New()
	}
	return &ExpenseService{
		store:     cfg.Store,
		parser:    cfg.Parser,
		analyzer:  analyzer,
		exporter:  cfg.Exporter,
		assistant: cfg.Assistant,
		aiTimeout: timeout,
	}
}

// AddFromText parses the text, applies overrides, defaults the category to
// Other, persists the expense, and returns it.
func (s *ExpenseService) AddFromText(ctx context.Context, text string, ov Overrides) (core.Expense, error) {
	parsed := s.parser.Parse(text)

	expense := core.Expense{
		Date:     parsed.Date,
		Category: core.Other,
		Notes:    strings.TrimSpace(text),
	}
	if parsed.Amount != nil {
		expense.Amount = *parsed.Amount
	}
	if parsed.CategoryGuess != nil {
		expense.Category = *parsed.CategoryGuess
	}
	if ov.Amount != nil {
		expense.Amount = *ov.Amount
	}
	if ov.Category != nil {
		expense.Category = *ov.Category
	}
	if ov.Date != nil {
		expense.Date = *ov.Date
	}

	if err := expense.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("invalid expense: %w", err)
	}
	if err := s.store.Add(ctx, expense); err != nil {
		return core.Expense{}, err
	}

	slog.InfoContext(ctx, "expense added",
		"category", expense.Category,
		"amount", expense.Amount.String(),
		"date", expense.Date.String(),
		"confidence", parsed.Confidence)
	return expense, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.store.Load(ctx)
}

// Dashboard aggregates a fresh snapshot; nothing is cached across calls.
func (s *ExpenseService) Dashboard(ctx context.Context) (core.Dashboard, error) {
	expenses, err := s.store.Load(ctx)
	if err != nil {
		return core.Dashboard{}, err
	}
	return s.analyzer.Summarize(expenses), nil
}

func (s *ExpenseService) ExportReport(ctx context.Context, dest string) error {
	expenses, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	return s.exporter.Export(ctx, expenses, dest)
}

func (s *ExpenseService) ClearAll(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// AskAI forwards a question about recent spending to the assistant. Provider
// failures and timeouts come back as wrapped ErrAIProvider errors.
func (s *ExpenseService) AskAI(ctx context.Context, question string) (string, error) {
	if s.assistant == nil {
		return "", ErrAIUnavailable
	}

	expenses, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}

	aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	answer, err := s.assistant.Complete(aiCtx, buildAIContext(expenses), question)
	if err != nil {
		slog.ErrorContext(ctx, "ai completion failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrAIProvider, err)
	}
	return answer, nil
}

// Transcribe forwards audio to the assistant's speech-to-text capability.
func (s *ExpenseService) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if s.assistant == nil {
		return "", ErrAIUnavailable
	}

	aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	text, err := s.assistant.Transcribe(aiCtx, audio)
	if err != nil {
		slog.ErrorContext(ctx, "transcription failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrAIProvider, err)
	}
	return text, nil
}

// buildAIContext renders the most recent expenses one per line, oldest
// first, appended to the assistant's system prompt.
func buildAIContext(expenses []core.Expense) string {
	if len(expenses) > aiContextLimit {
		expenses = expenses[len(expenses)-aiContextLimit:]
	}

	var b strings.Builder
	b.WriteString(aiSystemPrompt)
	if len(expenses) == 0 {
		b.WriteString("\n\nThe user has no recorded expenses yet.")
		return b.String()
	}
	b.WriteString("\n\nRecent expenses:\n")
	for _, e := range expenses {
		fmt.Fprintf(&b, "%s: %s - %s (%s)\n", e.Date, e.Amount, e.Category, e.Notes)
	}
	return b.String()
}
