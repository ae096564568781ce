// Package history keeps the predictions issued during the life of the process.
package history

import (
	"context"
	"sync"

	"github.com/matchpredict/matchpredict/internal/models"
)

// Store defines an append-only, insertion-ordered prediction log.
type Store interface {
	// Append adds a single prediction.
	Append(ctx context.Context, p models.Prediction) error

	// AppendBatch adds predictions as one contiguous block, in order.
	AppendBatch(ctx context.Context, ps []models.Prediction) error

	// List returns every stored prediction in insertion order.
	List(ctx context.Context) ([]models.Prediction, error)

	// Count returns the number of stored predictions.
	Count(ctx context.Context) (int, error)
}

// MemoryStore implements Store in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	predictions []models.Prediction
}

// NewMemoryStore creates an empty in-memory history.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds a single prediction.
func (s *MemoryStore) Append(ctx context.Context, p models.Prediction) error {
	s.mu.Lock()
	s.predictions = append(s.predictions, p)
	s.mu.Unlock()
	return nil
}

// AppendBatch adds predictions under a single lock so concurrent writers can
// never interleave inside the batch.
func (s *MemoryStore) AppendBatch(ctx context.Context, ps []models.Prediction) error {
	if len(ps) == 0 {
		return nil
	}
	s.mu.Lock()
	s.predictions = append(s.predictions, ps...)
	s.mu.Unlock()
	return nil
}

// List returns a snapshot copy of the history.
func (s *MemoryStore) List(ctx context.Context) ([]models.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Prediction, len(s.predictions))
	copy(out, s.predictions)
	return out, nil
}

// Count returns the number of stored predictions.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.predictions), nil
}
