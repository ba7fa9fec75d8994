package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"tuishare_backend/internal/feature/account/domain"
	"tuishare_backend/internal/feature/account/domain/entity"
	"tuishare_backend/internal/feature/account/usecase"
)

// AccountMongo is a MongoDB implementation of usecase.Repository.
// Each kind lives in its own collection; key uniqueness relies on the
// unique index created by EnsureIndexes.
type AccountMongo[T entity.Record[T]] struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// Compile-time check to ensure AccountMongo implements Repository.
var _ usecase.Repository[*entity.Supporter] = (*AccountMongo[*entity.Supporter])(nil)

// NewAccountMongo creates an AccountMongo bound to the kind's collection in db.
// A timeout <= 0 falls back to DefaultOpTimeout.
func NewAccountMongo[T entity.Record[T]](db *mongo.Database, timeout time.Duration) *AccountMongo[T] {
	if timeout <= 0 {
		timeout = DefaultOpTimeout
	}
	var zero T
	return &AccountMongo[T]{
		coll:    db.Collection(CollectionName(zero.Kind())),
		timeout: timeout,
	}
}

// CollectionName returns the collection that stores records of kind.
func CollectionName(kind entity.Kind) string {
	return kind.String() + "s"
}

// EnsureIndexes creates the unique index on the identifying key field.
// It is idempotent.
func (r *AccountMongo[T]) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var zero T
	field := zero.KeyField()
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(field + "_unique"),
	})
	if err != nil {
		return domain.Unavailable(err)
	}
	return nil
}

// Insert adds rec. A unique index violation yields domain.ErrDuplicateKey.
func (r *AccountMongo[T]) Insert(ctx context.Context, rec T) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return translateMongoError(err)
	}
	return nil
}

// FindByKey retrieves the record whose key field equals key.
func (r *AccountMongo[T]) FindByKey(ctx context.Context, key string) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var zero T
	rec := zero.New()
	if err := r.coll.FindOne(ctx, keyFilter(zero, key)).Decode(rec); err != nil {
		return zero, translateMongoError(err)
	}
	return rec, nil
}

// Exists reports whether a document with the key exists.
func (r *AccountMongo[T]) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var zero T
	n, err := r.coll.CountDocuments(ctx, keyFilter(zero, key), options.Count().SetLimit(1))
	if err != nil {
		return false, domain.Unavailable(err)
	}
	return n > 0, nil
}

func keyFilter[T entity.Record[T]](zero T, key string) bson.D {
	return bson.D{{Key: zero.KeyField(), Value: key}}
}

// translateMongoError maps driver errors onto domain errors.
func translateMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrDuplicateKey
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	default:
		return domain.Unavailable(err)
	}
}
