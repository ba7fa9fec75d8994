package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tuishare_backend/internal/feature/account/domain"
	"tuishare_backend/internal/feature/account/domain/entity"
	"tuishare_backend/internal/feature/account/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// DefaultOpTimeout はリモートDB操作1回あたりの既定タイムアウトです。
const DefaultOpTimeout = 5 * time.Second

// AccountPostgres はRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用し、種別ごとのテーブルに1レコード1行で保存します。
// キーの一意性はテーブルの一意インデックスに任せます。
type AccountPostgres[T entity.Record[T]] struct {
	db      *gorm.DB
	timeout time.Duration
}

// AccountPostgresがRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.Repository[*entity.School] = (*AccountPostgres[*entity.School])(nil)

// NewAccountPostgres は指定されたgorm.DB接続でAccountPostgresを生成します。
// timeoutが0以下の場合はDefaultOpTimeoutを使用します。
func NewAccountPostgres[T entity.Record[T]](db *gorm.DB, timeout time.Duration) *AccountPostgres[T] {
	if timeout <= 0 {
		timeout = DefaultOpTimeout
	}
	return &AccountPostgres[T]{db: db, timeout: timeout}
}

// Insert はレコードを追加します。
// 一意インデックス違反の場合、domain.ErrDuplicateKeyを返します。
func (r *AccountPostgres[T]) Insert(ctx context.Context, rec T) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicateKey
		}
		return domain.Unavailable(err)
	}
	return nil
}

// FindByKey は識別キーでレコードを取得します。
// 該当なしの場合、domain.ErrNotFoundを返します。
func (r *AccountPostgres[T]) FindByKey(ctx context.Context, key string) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var zero T
	rec := zero.New()
	if err := r.db.WithContext(ctx).Where(keyEq(zero, key)).First(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, domain.ErrNotFound
		}
		return zero, domain.Unavailable(err)
	}
	return rec, nil
}

// Exists は識別キーのレコードが存在するか返します。
func (r *AccountPostgres[T]) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var zero T
	var count int64
	if err := r.db.WithContext(ctx).Model(zero.New()).Where(keyEq(zero, key)).Count(&count).Error; err != nil {
		return false, domain.Unavailable(err)
	}
	return count > 0, nil
}

// keyEq は識別キー列の等価条件を組み立てます。
func keyEq[T entity.Record[T]](zero T, key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: zero.KeyField()}, Value: key}
}

// isDuplicateKey はGORMの変換済みエラーまたはpgconnのSQLSTATEで一意制約違反を判定します。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
