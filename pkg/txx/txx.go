package txx

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Manager runs a unit of work so that every write issued through the
// returned context commits or rolls back together. Calls nest: an inner
// WithinTx joins the outer unit of work.
type Manager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// ============================================================================
// SQL
// ============================================================================

// SQLManager opens database transactions on a sqlx pool
type SQLManager struct {
	db *sqlx.DB
}

func NewSQLManager(db *sqlx.DB) *SQLManager {
	return &SQLManager{db: db}
}

func (m *SQLManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Ext returns the transaction carried by ctx, or db when there is none.
// Repositories route every statement through it.
func Ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// ============================================================================
// In-process
// ============================================================================

type localKey struct{}

// LocalManager serializes units of work for the in-memory stores. It has no
// rollback: a failing unit keeps the writes it already made.
type LocalManager struct {
	mu sync.Mutex
}

func NewLocalManager() *LocalManager {
	return &LocalManager{}
}

func (m *LocalManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(localKey{}) == m {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(context.WithValue(ctx, localKey{}, m))
}
