package database

import (
	"context"

	"github.com/uptrace/bun"
)

type txKey struct{}

// WithTx returns a context carrying an open bun transaction. Repository
// methods resolve it via DBFromContext so that multi-repository units of
// work share one transaction.
func WithTx(ctx context.Context, tx bun.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext reports the transaction bound to ctx, if any.
func TxFromContext(ctx context.Context) (bun.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(bun.Tx)
	return tx, ok
}

// DBFromContext returns the transaction bound to ctx, or fallback when
// the context carries none.
func DBFromContext(ctx context.Context, fallback bun.IDB) bun.IDB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return fallback
}
