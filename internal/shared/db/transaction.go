// Package db carries a gorm transaction through context so repositories
// join an ambient transaction without taking it as a parameter.
package db

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TransactionManager opens transactions for usecases that persist more than
// one aggregate atomically (payment + payment log, subscription + plan).
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction runs fn inside one transaction. Repositories called with
// the derived context write through that transaction; fn returning an error
// rolls everything back.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// GetTx returns the ambient transaction, or the base connection when the
// caller is not running inside one.
func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return tm.db.WithContext(ctx)
}

// GetTxFromContext is the repository-side accessor: it prefers the ambient
// transaction and falls back to the repository's own connection.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
