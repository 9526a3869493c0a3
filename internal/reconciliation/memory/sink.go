package memory

import (
	"context"
	"sync"

	"givebridge/internal/reconciliation"
)

// Sink keeps records in process. It backs local runs and tests.
type Sink struct {
	mu      sync.Mutex
	records []reconciliation.Record
}

func New() *Sink {
	return &Sink{}
}

func (s *Sink) Emit(_ context.Context, record reconciliation.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Records returns a copy of everything emitted so far, oldest first.
func (s *Sink) Records() []reconciliation.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]reconciliation.Record(nil), s.records...)
}
