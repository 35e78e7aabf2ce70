package service

import (
	"context"
	"database/sql"

	"github.com/hrsys/candidate-api/internal/store"
)

// TransactionRunner executes a function within one atomic unit of work.
// The production implementation delegates to store.RunInTransaction;
// tests substitute a runner that invokes the function directly.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn store.TxFn) error
}

// dbTransactionRunner runs functions in real database transactions.
type dbTransactionRunner struct {
	db *sql.DB
}

// NewTransactionRunner creates a TransactionRunner over the given
// database connection.
func NewTransactionRunner(db *sql.DB) TransactionRunner {
	return &dbTransactionRunner{db: db}
}

func (r *dbTransactionRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	return store.RunInTransaction(ctx, r.db, fn)
}
