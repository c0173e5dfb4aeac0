// Package database はDB接続の初期化とスキーマ作成を行います。
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"todoapp/backend/internal/config"
)

// GetDSN は設定からMySQL接続文字列 (DSN) を構築します。
func GetDSN(cfg config.DatabaseConfig) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Pass
	mc.Net = "tcp"
	mc.Addr = cfg.Host + ":" + cfg.Port
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	// UPDATE の RowsAffected を「一致した行数」にする (値が同じでも0にならない)
	mc.ClientFoundRows = true
	return mc.FormatDSN()
}

// Open は設定されたドライバーでDBに接続し、Pingで疎通を確認します。
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverMySQL:
		db, err = sql.Open("mysql", GetDSN(cfg))
		if err != nil {
			return nil, fmt.Errorf("opening mysql connection: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	case config.DriverSQLite:
		db, err = OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// OpenSQLite は modernc.org/sqlite で接続します。path に ":memory:" を渡すとインメモリDBになります。
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// sqlite は書き込みが直列なので接続は1本に絞る。インメモリDBも接続ごとに別物になる
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	return db, nil
}
