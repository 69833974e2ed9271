// Package memory is an in-process Store used by tests and local development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"spendlens/internal/core"
	"spendlens/internal/store"
)

type Store struct {
	mu    sync.Mutex
	items []core.Expense
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) Save(_ context.Context, expenses []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Expense(nil), expenses...)
	return nil
}

func (s *Store) Add(_ context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}
