// Package usecase implements the business logic for the account feature.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tuishare_backend/internal/feature/account/domain"
	"tuishare_backend/internal/feature/account/domain/entity"
)

// Repository abstracts the backing medium for one account kind.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type Repository[T entity.Record[T]] interface {
	// Insert persists rec only if no record with the same identifying key exists.
	// The check and the insert must be a single atomic step.
	// It returns domain.ErrDuplicateKey when the key is taken.
	Insert(ctx context.Context, rec T) error

	// FindByKey retrieves the record with the given identifying key.
	// It returns domain.ErrNotFound when no record matches.
	FindByKey(ctx context.Context, key string) (T, error)

	// Exists reports whether a record with the given identifying key exists.
	Exists(ctx context.Context, key string) (bool, error)
}

// Hasher derives and verifies credential hashes.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
	// DummyHash returns a well-formed hash used when no record matches,
	// so that a missing key costs the same as a wrong password.
	DummyHash() string
}

// AccountStore provides create, lookup and authentication for one account kind,
// independent of the backing medium.
type AccountStore[T entity.Record[T]] struct {
	repo   Repository[T]
	hasher Hasher
	newID  func() string
	now    func() time.Time
}

// Option customizes an AccountStore.
type Option func(*options)

type options struct {
	newID func() string
	now   func() time.Time
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// WithClock overrides the clock used for creation timestamps.
// The default clock truncates to milliseconds, the coarsest precision of the backing media.
func WithClock(fn func() time.Time) Option {
	return func(o *options) { o.now = fn }
}

// NewAccountStore creates an AccountStore over the given repository.
func NewAccountStore[T entity.Record[T]](repo Repository[T], hasher Hasher, opts ...Option) *AccountStore[T] {
	o := options{
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &AccountStore[T]{
		repo:   repo,
		hasher: hasher,
		newID:  o.newID,
		now:    o.now,
	}
}

// Kind returns the account kind this store manages.
func (s *AccountStore[T]) Kind() entity.Kind {
	var zero T
	return zero.Kind()
}

// Create materializes and persists a new record.
// The caller validates business rules (email shape, password length) beforehand;
// Create only checks that the record and its identifying key are present.
// The input record is not modified.
func (s *AccountStore[T]) Create(ctx context.Context, rec T, password string) (T, error) {
	var zero T
	if isNil(rec) {
		return zero, &domain.ValidationError{Field: "record", Reason: "is required"}
	}
	if strings.TrimSpace(rec.Key()) == "" {
		return zero, &domain.ValidationError{Field: rec.KeyField(), Reason: "is required"}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return zero, &domain.ValidationError{Field: "password", Reason: "must be at most 72 bytes"}
		}
		return zero, err
	}

	stored := rec.Clone()
	base := stored.Base()
	base.ID = s.newID()
	base.CreatedAt = s.now()
	base.Password = hash

	if err := s.repo.Insert(ctx, stored); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return zero, domain.ErrDuplicateKey
		}
		return zero, fmt.Errorf("failed to create %s: %w", s.Kind(), err)
	}
	return stored.Clone(), nil
}

// FindByKey returns the record with the given identifying key.
// An absent record is reported as found == false with a nil error.
func (s *AccountStore[T]) FindByKey(ctx context.Context, key string) (T, bool, error) {
	var zero T
	rec, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("failed to find %s: %w", s.Kind(), err)
	}
	return rec.Clone(), true, nil
}

// Authenticate returns the record when password matches its stored hash.
// An unknown key and a wrong password both yield domain.ErrInvalidCredentials.
// The hash comparison runs in both cases to keep the timing uniform.
func (s *AccountStore[T]) Authenticate(ctx context.Context, key, password string) (T, error) {
	var zero T
	rec, found, err := s.FindByKey(ctx, key)
	if err != nil {
		return zero, err
	}

	hash := s.hasher.DummyHash()
	if found {
		hash = rec.Base().Password
	}
	ok := s.hasher.Verify(hash, password)

	if !found || !ok {
		return zero, domain.ErrInvalidCredentials
	}
	return rec, nil
}

// Exists reports whether a record with the given identifying key exists.
func (s *AccountStore[T]) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.repo.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", s.Kind(), err)
	}
	return ok, nil
}

// isNil reports whether a pointer-shaped record is nil.
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
