package services

import (
	"context"
	"errors"

	"spendlens/internal/core"
)

// Ports the coordinator depends on. Each has one production implementation
// (parse.Parser, report.ExcelExporter, ai.OpenAI) and test doubles.
type (
	Parser interface {
		Parse(text string) core.ParsedExpense
	}

	Exporter interface {
		Export(ctx context.Context, expenses []core.Expense, dest string) error
	}

	// Assistant is the optional AI collaborator. A nil Assistant is valid
	// configuration; AI operations then fail with ErrAIUnavailable.
	Assistant interface {
		Transcribe(ctx context.Context, audio []byte) (string, error)
		Complete(ctx context.Context, systemContext, question string) (string, error)
	}
)

var (
	ErrAIUnavailable = errors.New("ai service not configured")
	ErrAIProvider    = errors.New("ai provider error")
)
