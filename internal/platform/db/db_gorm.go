// Package db はGORMによるデータベース接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tuishare_backend/internal/feature/account/adapters"
	"tuishare_backend/internal/feature/account/domain/entity"
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Config はPostgreSQL接続設定を保持します。
type Config struct {
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQLのインスタンス接続名（設定時はUnixソケットを使用）
}

// LoadConfigFromEnv は環境変数からDB設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		User:         getenv("DB_USER", "postgres"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         getenv("DB_NAME", "tuishare"),
		Host:         getenv("DB_HOST", "localhost"),
		Port:         getenv("DB_PORT", "5432"),
		SSLMode:      getenv("DB_SSLMODE", "disable"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN はPostgreSQLのkey=value形式DSNを生成します。
// InstanceNameが設定されている場合はHost/Portより優先します。
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name)
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えます。
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry はtimeoutに達するまでretryInterval間隔で接続を試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err)
		time.Sleep(min(retryInterval, remaining))
	}
}

// gormConfig は一意制約違反などをgormのエラーに変換する設定です。
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// OpenPostgres はPostgreSQLに接続し、必要であればマイグレーションを実行します。
func OpenPostgres(cfg Config, runMigrations bool) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), gormConfig())
	})
	if err != nil {
		return nil, err
	}

	if runMigrations {
		if err := MigrateAccounts(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// MigrateAccounts は種別ごとのアカウントテーブルを作成します。
func MigrateAccounts(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Student{},
		&entity.School{},
		&entity.Supporter{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// OpenSQLite はローカル用のSQLiteファイルを開き、キー/値テーブルを作成します。
// ":memory:" を渡すとテスト用のインメモリDBになります。
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}

	// SQLiteは単一ライターのため接続を1本に制限
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&adapters.LocalEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
