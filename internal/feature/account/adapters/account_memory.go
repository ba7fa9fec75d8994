// Package adapters provides repository implementations for the account feature.
package adapters

import (
	"context"
	"sync"

	"tuishare_backend/internal/feature/account/domain"
	"tuishare_backend/internal/feature/account/domain/entity"
	"tuishare_backend/internal/feature/account/usecase"
)

// AccountMemory is a process-local implementation of usecase.Repository.
// Records live in a map for the lifetime of the process.
type AccountMemory[T entity.Record[T]] struct {
	mu      sync.RWMutex
	records map[string]T
}

// Compile-time check to ensure AccountMemory implements Repository.
var _ usecase.Repository[*entity.Student] = (*AccountMemory[*entity.Student])(nil)

// NewAccountMemory creates an empty AccountMemory.
func NewAccountMemory[T entity.Record[T]]() *AccountMemory[T] {
	return &AccountMemory[T]{records: make(map[string]T)}
}

// Insert stores a copy of rec unless its key is already taken.
// The existence check and the write happen under one lock.
func (r *AccountMemory[T]) Insert(ctx context.Context, rec T) error {
	if err := ctx.Err(); err != nil {
		return domain.Unavailable(err)
	}
	key := rec.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[key]; ok {
		return domain.ErrDuplicateKey
	}
	r.records[key] = rec.Clone()
	return nil
}

// FindByKey returns a copy of the record stored under key.
func (r *AccountMemory[T]) FindByKey(ctx context.Context, key string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, domain.Unavailable(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[key]
	if !ok {
		return zero, domain.ErrNotFound
	}
	return rec.Clone(), nil
}

// Exists reports whether key is stored.
func (r *AccountMemory[T]) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, domain.Unavailable(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[key]
	return ok, nil
}
