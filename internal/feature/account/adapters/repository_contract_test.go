package adapters_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tuishare_backend/internal/feature/account/domain"
	"tuishare_backend/internal/feature/account/domain/entity"
	"tuishare_backend/internal/feature/account/usecase"
	"tuishare_backend/internal/platform/password"
)

func sampleStudent(id, email string) *entity.Student {
	return &entity.Student{
		Account: entity.Account{
			ID:        id,
			Password:  "$2a$04$abcdefghijklmnopqrstuuJ3Q8dN9Wb5YfV0GkQ0nH3aQwS9a4pW2",
			CreatedAt: time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC),
		},
		Email:      email,
		FullName:   "A B",
		SchoolID:   "S1",
		SchoolName: "X",
		Course:     "Nursing",
	}
}

// runRepositoryContract はすべてのバックエンドが満たすべきRepositoryの振る舞いを検証します。
func runRepositoryContract(t *testing.T, repo usecase.Repository[*entity.Student]) {
	t.Helper()
	ctx := context.Background()

	t.Run("insert then find", func(t *testing.T) {
		rec := sampleStudent("11111111-1111-4111-8111-111111111111", "a@b.com")
		require.NoError(t, repo.Insert(ctx, rec))

		got, err := repo.FindByKey(ctx, "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.Email, got.Email)
		assert.Equal(t, rec.Password, got.Password)
		assert.Equal(t, rec.Course, got.Course)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("millisecond timestamp round trip", func(t *testing.T) {
		rec := sampleStudent("33333333-3333-4333-8333-333333333333", "ms@b.com")
		rec.CreatedAt = time.Date(2026, 5, 6, 7, 8, 9, 123_000_000, time.UTC)
		require.NoError(t, repo.Insert(ctx, rec))

		got, err := repo.FindByKey(ctx, "ms@b.com")
		require.NoError(t, err)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt), "want %v, got %v", rec.CreatedAt, got.CreatedAt)
	})

	t.Run("created record equals stored form", func(t *testing.T) {
		store := usecase.NewAccountStore[*entity.Student](repo, password.NewBcryptHasher(bcrypt.MinCost))

		created, err := store.Create(ctx, &entity.Student{
			Email: "clock@b.com", FullName: "C", SchoolID: "S1", SchoolName: "X",
		}, "secret1")
		require.NoError(t, err)

		got, found, err := store.FindByKey(ctx, "clock@b.com")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Password, got.Password)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "want %v, got %v", created.CreatedAt, got.CreatedAt)
	})

	t.Run("duplicate key", func(t *testing.T) {
		err := repo.Insert(ctx, sampleStudent("22222222-2222-4222-8222-222222222222", "a@b.com"))
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)

		got, err := repo.FindByKey(ctx, "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, "11111111-1111-4111-8111-111111111111", got.ID, "original record must survive")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByKey(ctx, "missing@b.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = repo.FindByKey(ctx, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := repo.Exists(ctx, "a@b.com")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, "missing@b.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("concurrent duplicate inserts", func(t *testing.T) {
		const workers = 8
		var (
			wg        sync.WaitGroup
			successes atomic.Int32
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				rec := sampleStudent(
					[]string{
						"30000000-0000-4000-8000-000000000000", "30000000-0000-4000-8000-000000000001",
						"30000000-0000-4000-8000-000000000002", "30000000-0000-4000-8000-000000000003",
						"30000000-0000-4000-8000-000000000004", "30000000-0000-4000-8000-000000000005",
						"30000000-0000-4000-8000-000000000006", "30000000-0000-4000-8000-000000000007",
					}[i],
					"race@b.com",
				)
				if err := repo.Insert(ctx, rec); err == nil {
					successes.Add(1)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), successes.Load())
	})
}
