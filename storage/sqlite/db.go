// Package sqlite 提供生命周期仓储契约的 SQL 实现，基于 database/sql 与
// modernc.org/sqlite 纯 Go 驱动。
//
// 并发语义：
//   - Persist 的更新以 `WHERE id = ? AND version = ?` 做乐观检查，
//     版本号在同一条语句中递增；
//   - MarkDeleted / ClearDeleted 为条件化单语句更新（对 deleted_at 做
//     test-and-set），并发竞争只有一方得到 affected=1。
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Config 数据库连接配置。
type Config struct {
	// DSN 数据源，如文件路径或 ":memory:"
	DSN string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Open 按配置打开数据库并做基础可用性检查。
// 内存库（":memory:"）强制单连接，避免每个连接各自为政。
func Open(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.DSN == ":memory:" {
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
