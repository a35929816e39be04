// Package optimistic applies list mutations locally before the server
// confirms them.
package optimistic

import (
	"context"
	"sync"
)

// Reconcile rewrites the list once the server accepted a mutation, e.g. to
// swap a placeholder for the server's copy.
type Reconcile[T any] func(items []T) []T

// Mutation is a local change paired with its remote commit.
type Mutation[T any] struct {
	// Local returns the list with the change applied. It receives a copy.
	Local func(items []T) []T
	// Commit performs the remote call. A nil Reconcile keeps the local result.
	Commit func(ctx context.Context) (Reconcile[T], error)
}

// Store is a list with snapshot rollback. It is safe for concurrent use;
// Commit runs without the lock held.
type Store[T any] struct {
	mu    sync.Mutex
	items []T
}

// New returns a store holding items.
func New[T any](items []T) *Store[T] {
	return &Store[T]{items: clone(items)}
}

// Items returns a copy of the current list.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

// Replace overwrites the list, as after a full reload.
func (s *Store[T]) Replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = clone(items)
}

// Apply runs m.Local immediately, then m.Commit. When Commit fails the list
// is restored to the snapshot taken before Local and the error is returned.
func (s *Store[T]) Apply(ctx context.Context, m Mutation[T]) error {
	s.mu.Lock()
	snapshot := clone(s.items)
	if m.Local != nil {
		s.items = m.Local(clone(s.items))
	}
	s.mu.Unlock()

	reconcile, err := m.Commit(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.items = snapshot
		return err
	}
	if reconcile != nil {
		s.items = reconcile(clone(s.items))
	}
	return nil
}

func clone[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
