// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"gorm.io/gorm"

	"tuishare_backend/internal/feature/account/adapters"
	"tuishare_backend/internal/feature/account/domain/entity"
	"tuishare_backend/internal/feature/account/usecase"
	"tuishare_backend/internal/platform/cache"
	"tuishare_backend/internal/platform/config"
	"tuishare_backend/internal/platform/db"
	httphandler "tuishare_backend/internal/platform/http/handler"
	platformmongo "tuishare_backend/internal/platform/mongo"
)

// cacheNamespace は全種別共通のキャッシュキー接頭辞です。
const cacheNamespace = "accounts"

// Backend is the opened backing medium shared by every account kind.
type Backend struct {
	Name string

	gdb     *gorm.DB
	mdb     *mongo.Database
	mclient *mongo.Client
}

// OpenBackend opens the medium selected by cfg.StoreBackend.
func OpenBackend(ctx context.Context, cfg config.Config) (*Backend, error) {
	b := &Backend{Name: cfg.StoreBackend}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		gdb, err := db.OpenPostgres(cfg.DB, cfg.RunMigrations)
		if err != nil {
			return nil, err
		}
		b.gdb = gdb
	case config.BackendLocal:
		gdb, err := db.OpenSQLite(cfg.LocalStorePath)
		if err != nil {
			return nil, err
		}
		b.gdb = gdb
	case config.BackendMongo:
		client, err := platformmongo.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		b.mclient = client
		b.mdb = client.Database(cfg.MongoDatabase)
	case config.BackendMemory:
		slog.Warn("using in-memory store; accounts are lost on restart")
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	slog.Info("account store opened", "backend", b.Name)
	return b, nil
}

// Ping checks that the medium is reachable. The memory backend always succeeds.
func (b *Backend) Ping(ctx context.Context) error {
	switch {
	case b.gdb != nil:
		sqlDB, err := b.gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	case b.mclient != nil:
		return b.mclient.Ping(ctx, readpref.Primary())
	default:
		return nil
	}
}

// Close releases the connections held by the medium.
func (b *Backend) Close(ctx context.Context) error {
	switch {
	case b.gdb != nil:
		sqlDB, err := b.gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	case b.mclient != nil:
		return b.mclient.Disconnect(ctx)
	default:
		return nil
	}
}

// NewAccountRepository creates the Repository for kind T on the opened backend.
// If Redis is available, durable media are wrapped in a read-through cache.
func NewAccountRepository[T entity.Record[T]](ctx context.Context, b *Backend, rdb *redis.Client, cfg config.Config) (usecase.Repository[T], error) {
	var repo usecase.Repository[T]

	switch b.Name {
	case config.BackendPostgres:
		repo = adapters.NewAccountPostgres[T](b.gdb, cfg.StoreOpTimeout)
	case config.BackendLocal:
		repo = adapters.NewAccountLocal[T](b.gdb)
	case config.BackendMongo:
		m := adapters.NewAccountMongo[T](b.mdb, cfg.StoreOpTimeout)
		if err := m.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		repo = m
	case config.BackendMemory:
		// プロセス内のmapはキャッシュより速いためラップしない
		return adapters.NewAccountMemory[T](), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", b.Name)
	}

	if rdb != nil {
		return cache.NewCachingAccountRepository[T](rdb, cfg.CacheTTL, repo, cacheNamespace), nil
	}
	return repo, nil
}

// NewAccountStore wires a Repository and a Hasher into an AccountStore for kind T.
func NewAccountStore[T entity.Record[T]](ctx context.Context, b *Backend, rdb *redis.Client, cfg config.Config, hasher usecase.Hasher) (*usecase.AccountStore[T], error) {
	repo, err := NewAccountRepository[T](ctx, b, rdb, cfg)
	if err != nil {
		return nil, err
	}
	return usecase.NewAccountStore[T](repo, hasher), nil
}

// NewHealthChecks returns the dependency checks reported by /healthz.
func NewHealthChecks(b *Backend, rdb *redis.Client) map[string]httphandler.PingFunc {
	checks := map[string]httphandler.PingFunc{"store": b.Ping}
	if rdb != nil {
		checks["cache"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}
