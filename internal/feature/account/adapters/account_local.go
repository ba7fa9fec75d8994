package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tuishare_backend/internal/feature/account/domain"
	"tuishare_backend/internal/feature/account/domain/entity"
	"tuishare_backend/internal/feature/account/usecase"
)

// LocalEntry is one key/value pair of the client-local store.
// Records are kept as JSON under (namespace, key), the same way a browser
// keeps them in localStorage.
type LocalEntry struct {
	Namespace string    `gorm:"primaryKey;size:32"`
	EntryKey  string    `gorm:"column:entry_key;primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (LocalEntry) TableName() string {
	return "local_entries"
}

// AccountLocal is a client-local implementation of usecase.Repository on a
// single-file SQLite database. Data stays on this machine and is not shared.
type AccountLocal[T entity.Record[T]] struct {
	db        *gorm.DB
	namespace string
}

// Compile-time check to ensure AccountLocal implements Repository.
var _ usecase.Repository[*entity.Student] = (*AccountLocal[*entity.Student])(nil)

// NewAccountLocal creates an AccountLocal using the kind name as namespace.
func NewAccountLocal[T entity.Record[T]](db *gorm.DB) *AccountLocal[T] {
	var zero T
	return &AccountLocal[T]{db: db, namespace: zero.Kind().String()}
}

// Insert stores rec as JSON. The composite primary key rejects a second
// entry for the same key.
func (r *AccountLocal[T]) Insert(ctx context.Context, rec T) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", r.namespace, err)
	}

	e := &LocalEntry{
		Namespace: r.namespace,
		EntryKey:  rec.Key(),
		Value:     string(data),
		CreatedAt: rec.Base().CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateKey
		}
		return domain.Unavailable(err)
	}
	return nil
}

// FindByKey decodes the entry stored under key.
func (r *AccountLocal[T]) FindByKey(ctx context.Context, key string) (T, error) {
	var zero T
	var e LocalEntry
	err := r.db.WithContext(ctx).
		Where(r.entryCond(key)).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, domain.ErrNotFound
		}
		return zero, domain.Unavailable(err)
	}

	rec := zero.New()
	if err := json.Unmarshal([]byte(e.Value), rec); err != nil {
		return zero, domain.Unavailable(fmt.Errorf("corrupt %s entry %q: %w", r.namespace, key, err))
	}
	return rec, nil
}

// Exists reports whether an entry is stored under key.
func (r *AccountLocal[T]) Exists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LocalEntry{}).
		Where(r.entryCond(key)).
		Count(&count).Error
	if err != nil {
		return false, domain.Unavailable(err)
	}
	return count > 0, nil
}

// entryCond matches one entry. A map keeps zero values such as an empty key
// in the condition, unlike a struct.
func (r *AccountLocal[T]) entryCond(key string) map[string]any {
	return map[string]any{"namespace": r.namespace, "entry_key": key}
}
