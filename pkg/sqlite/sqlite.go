// Package sqlite wraps the single-file database handle used for persistence.
// The handle is constructed explicitly and passed into the repositories; there
// is no ambient connection state.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

type txContextKey string

const txKey txContextKey = "trx"

type DB struct {
	conn *gorm.DB
}

// Open connects to the database file at path, creating the parent directory
// if needed. Callers own the handle and must Close it.
func Open(path string, withDebug bool) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}

	level := gormlogger.Silent
	if withDebug {
		level = gormlogger.Info
	}

	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	return &DB{conn: conn}, nil
}

// NewWithConn wraps an existing gorm connection. Used by tests to run against
// an in-memory database.
func NewWithConn(conn *gorm.DB) *DB {
	return &DB{conn: conn}
}

func (d *DB) Close() error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return d.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ctx = context.WithValue(ctx, txKey, tx)
		return fn(ctx)
	})
}

// Conn returns the connection bound to ctx, honoring any transaction opened
// by WithinTransaction higher up the call chain.
func (d *DB) Conn(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok {
		return tx
	}

	return d.conn.WithContext(ctx)
}
