package app

import (
	"context"

	"github.com/nordsym/guldkant/internal/domain"
)

// runOptimistic is the shared shape of an optimistic mutation: apply a local
// change, call the backend outside the lock, then either reconcile the
// backend's answer into the collection or restore the pre-mutation snapshot.
//
// A free function because Go methods cannot carry type parameters.
func runOptimistic[T any](
	ctx context.Context,
	s *Store,
	apply func(quotes []*domain.Quote) []*domain.Quote,
	remote func(ctx context.Context) (T, error),
	reconcile func(quotes []*domain.Quote, result T) []*domain.Quote,
) (T, error) {
	s.mu.Lock()
	snapshot := s.quotes
	s.quotes = apply(cloneAll(s.quotes))
	s.syncing = true
	s.mu.Unlock()

	result, err := remote(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncing = false

	if err != nil {
		s.quotes = snapshot

		return result, err
	}

	s.quotes = reconcile(s.quotes, result)

	return result, nil
}
