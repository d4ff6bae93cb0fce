// Package postgres is the sqlx/lib-pq persistence layer: one repository per
// aggregate, ports/out-interface, IoC-injected, on a relational driver
// because these invariants (row locks, a single transaction per request,
// unique-constraint races) are RDBMS-native concerns.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

// Config mirrors common.Config.DB (pkg/domain/config.go).
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func Connect(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	slog.Info("postgres: connected", "max_open_conns", cfg.MaxOpenConns)
	return db, nil
}

// querier is satisfied by both *sqlx.DB and *sqlx.Tx, letting every
// repository method run unmodified whether or not a transaction is open on
// ctx.
type querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Q resolves the querier active on ctx: the open *sqlx.Tx if Transactor
// started one, otherwise the pooled *sqlx.DB directly.
func Q(ctx context.Context, db *sqlx.DB) querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return db
}
