package repository

import (
	"context"

	"gorm.io/gorm"
)

type txCtxKey struct{}

// Conn returns the transaction carried by ctx, or the pool bound to ctx when there is none.
func (d *Database) Conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txCtxKey{}).(*gorm.DB); ok {
		return tx
	}
	return d.DB.WithContext(ctx)
}

// TxFn runs f inside a transaction stored in the context passed to f. It commits when f
// returns nil and rolls back otherwise. A nested call joins the outer transaction.
func (d *Database) TxFn(ctx context.Context, f func(ctx context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Value(txCtxKey{}).(*gorm.DB); ok {
		return f(ctx)
	}
	return d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(context.WithValue(ctx, txCtxKey{}, tx))
	})
}
